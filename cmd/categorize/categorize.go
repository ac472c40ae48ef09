// Package categorize handles keyword categorization commands
package categorize

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/sms-categorizer/cmd/root"
	"fjacquet/sms-categorizer/internal/categorizer"

	"github.com/spf13/cobra"
)

var (
	partyName   string
	showKeyword bool
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize [message]",
	Short: "Categorize a message or counterparty using keyword rules",
	Long: `Categorize a whole message, or only a counterparty name with --party, using the
ordered keyword rules. The first category with a matching keyword wins; text that matches
no keyword falls into the catch-all category.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&partyName, "party", "p", "", "Counterparty name to categorize instead of a whole message")
	Cmd.Flags().BoolVarP(&showKeyword, "keyword", "k", false, "Also print the keyword that decided the category")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	text := partyName
	if text == "" {
		if len(args) == 0 {
			return fmt.Errorf("a message or --party is required")
		}
		text = strings.Join(args, " ")
	}

	Run(appContainer.GetResolver(), text, showKeyword, cmd.OutOrStdout())
	return nil
}

// Run resolves text against the rules of resolver and writes the category
// to w.
func Run(resolver *categorizer.Resolver, text string, withKeyword bool, w io.Writer) {
	category, keyword := resolver.ResolveWithKeyword(text)
	if !withKeyword {
		_, _ = fmt.Fprintln(w, category)
		return
	}
	if keyword == "" {
		keyword = "-"
	}
	_, _ = fmt.Fprintf(w, "%s\t%s\n", category, keyword)
}
