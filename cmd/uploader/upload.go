package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/domain"
)

var (
	flagTitle         string
	flagDescription   string
	flagPrice         string
	flagCategory      int
	flagSKU           string
	flagImages        []string
	flagAIDescription bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a single product",
	Long: `Builds one product from flags, publishes it, and waits for the
result. With --ai-description and an OpenAI key configured, an empty
description is generated from the title.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		description := flagDescription
		if description == "" && flagAIDescription {
			if !appInstance.assistant.Enabled() {
				return fmt.Errorf("--ai-description requires an OpenAI API key")
			}
			generated, err := appInstance.assistant.GenerateDescription(ctx, flagTitle, "product")
			if err != nil {
				return fmt.Errorf("failed to generate description: %w", err)
			}
			description = generated
		}

		t, err := domain.NewTask(flagTitle, description, flagPrice, flagCategory, flagImages)
		if err != nil {
			return fmt.Errorf("invalid product: %w", err)
		}
		t.SKU = flagSKU

		runner := appInstance.newRunner()
		defer runner.Stop()

		done := make(chan domain.Result, 1)
		runner.SetCompletionCallback(func(r domain.Result) {
			done <- r
		})

		if _, err := runner.Submit(t); err != nil {
			return fmt.Errorf("failed to submit product: %w", err)
		}
		runner.WaitForCompletion()

		result := <-done
		if !result.Success {
			return fmt.Errorf("upload failed: %s", result.Err)
		}

		fmt.Printf("Created product %d: %s\n", result.Product.ID, result.Product.Permalink)
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&flagTitle, "title", "", "product title")
	uploadCmd.Flags().StringVar(&flagDescription, "description", "", "product description")
	uploadCmd.Flags().StringVar(&flagPrice, "price", "", "regular price, e.g. 19.99")
	uploadCmd.Flags().IntVar(&flagCategory, "category", 0, "category ID")
	uploadCmd.Flags().StringVar(&flagSKU, "sku", "", "optional SKU")
	uploadCmd.Flags().StringSliceVar(&flagImages, "image", nil,
		"image file to upload (repeatable)")
	uploadCmd.Flags().BoolVar(&flagAIDescription, "ai-description", false,
		"generate a description when none is given")

	_ = uploadCmd.MarkFlagRequired("title")
	_ = uploadCmd.MarkFlagRequired("price")
	_ = uploadCmd.MarkFlagRequired("category")

	rootCmd.AddCommand(uploadCmd)
}
