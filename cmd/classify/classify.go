// Package classify handles the classify command
package classify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/sms-categorizer/cmd/root"
	"fjacquet/sms-categorizer/internal/parsererror"
	"fjacquet/sms-categorizer/internal/pipeline"

	"github.com/spf13/cobra"
)

// ErrNoClassifier is returned when no fallback classifier backend is configured.
var ErrNoClassifier = errors.New("no classifier configured (set classifier.backend or --classifier)")

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify <message>",
	Short: "Categorize a message with the fallback classifier only",
	Long: `Categorize a message with the configured fallback classifier, skipping the bank templates.

The serving backend loads tokenizer.json and label_map.json on first use and queries a
TensorFlow Serving model; the gemini backend asks a Gemini model to pick a category.`,
	Args: cobra.MinimumNArgs(1),
	RunE: classifyFunc,
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}
	return Run(cmd.Context(), appContainer.GetClassifier(), strings.Join(args, " "), cmd.OutOrStdout())
}

// Run classifies text with c and writes the label to w.
func Run(ctx context.Context, c pipeline.Classifier, text string, w io.Writer) error {
	if c == nil {
		return ErrNoClassifier
	}
	if ctx == nil {
		ctx = context.Background()
	}

	label, err := c.Classify(ctx, text)
	if err != nil {
		return &parsererror.CategorizationError{Text: text, Strategy: pipeline.StrategyName(c), Err: err}
	}
	_, err = fmt.Fprintln(w, label)
	return err
}
