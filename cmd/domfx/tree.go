package main

import (
	"fmt"

	"github.com/npillmayer/domfx/dom/domdbg"
	"github.com/npillmayer/domfx/query"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/net/html"
)

func newTreeCmd(conf *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "print the tree of a document",
		Long:  `tree prints the element tree of an HTML document, or of the elements matching a selector.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, conf)
			if err != nil {
				return err
			}
			roots := []*html.Node{doc.Root()}
			if selector, _ := cmd.Flags().GetString("select"); selector != "" {
				q := query.New(doc, nil)
				defer q.Engine().Close()
				sel, err := q.Select(selector)
				if err != nil {
					return err
				}
				roots = sel.Nodes()
			}
			for _, n := range roots {
				fmt.Fprint(cmd.OutOrStdout(), domdbg.Print(n))
			}
			return nil
		},
	}
	cmd.Flags().StringP("select", "s", "", "print the subtrees of elements matching a selector")
	return cmd
}
