package main

import (
	"fmt"
	"os"

	"fjacquet/sms-categorizer/cmd/batch"
	"fjacquet/sms-categorizer/cmd/categorize"
	"fjacquet/sms-categorizer/cmd/classify"
	"fjacquet/sms-categorizer/cmd/parse"
	"fjacquet/sms-categorizer/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
