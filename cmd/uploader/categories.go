package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/category"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the store's category tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := appInstance.store.ListCategories(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		if len(cats) == 0 {
			fmt.Println("No categories found.")
			return nil
		}

		tree := category.BuildTree(cats)
		for _, line := range category.Flatten(tree) {
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
