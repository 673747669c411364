package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs/internal/adapters/driven/client"
	"github.com/custodia-labs/askdocs/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage loaded documents",
	Long:  `Add, list, view, or delete documents in the corpus.`,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [path...]",
	Short: "Add files or directories",
	Long: `Add Markdown, HTML and PDF files. Directories are searched recursively;
hidden and unsupported files are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocumentAdd,
}

var documentAddURLCmd = &cobra.Command{
	Use:   "add-url [url]",
	Short: "Fetch and add a web page",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentAddURL,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id...]",
	Short: "Delete documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocumentDelete,
}

// Document flags.
var (
	documentType    string
	documentContent bool
)

func init() {
	documentAddCmd.Flags().StringVarP(&documentType, "type", "t", "", "file type (pdf, markdown, html); detected from the extension when empty")
	documentGetCmd.Flags().BoolVarP(&documentContent, "content", "c", false, "print the document content")

	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentAddURLCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if remote() {
		return fmt.Errorf("document add is %w", errRemoteUnsupported)
	}
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	ctx := cmd.Context()

	var docs []*domain.Document
	var failures []error
	if documentType != "" {
		ft, err := domain.ParseFileType(documentType)
		if err != nil {
			return fmt.Errorf("invalid --type %q: %w", documentType, err)
		}
		for _, path := range args {
			doc, err := ingestService.IngestFile(ctx, path, ft)
			if err != nil {
				failures = append(failures, fmt.Errorf("%s: %w", path, err))
				continue
			}
			docs = append(docs, doc)
		}
	} else {
		docs, failures = ingestService.IngestPaths(ctx, args)
	}

	for _, err := range failures {
		cmd.PrintErrf("Warning: %v\n", err)
	}
	if ok, err := render(cmd, summaries(docs)); ok {
		return err
	}
	for _, doc := range docs {
		cmd.Printf("Added %s  %s (%s)\n", doc.ID, doc.Title, doc.FileType)
	}
	cmd.Printf("Added %d documents\n", len(docs))
	if len(docs) == 0 && len(failures) > 0 {
		return errors.New("no documents added")
	}
	return nil
}

func runDocumentAddURL(cmd *cobra.Command, args []string) error {
	if remote() {
		return fmt.Errorf("document add-url is %w", errRemoteUnsupported)
	}
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	doc, err := ingestService.IngestURL(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to add URL: %w", err)
	}

	if ok, err := render(cmd, doc.Summary()); ok {
		return err
	}
	cmd.Printf("Added %s  %s\n", doc.ID, doc.Title)
	return nil
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if ok, err := render(cmd, docs); ok {
		return err
	}
	if len(docs) == 0 {
		cmd.Println("No documents loaded.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title: %s\n", docs[i].Title)
		cmd.Printf("    Type:  %s\n", docs[i].FileType)
		if docs[i].URL != nil {
			cmd.Printf("    URL:   %s\n", *docs[i].URL)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if documentContent {
		cmd.Println(doc.Content)
		return nil
	}
	if ok, err := render(cmd, doc.Summary()); ok {
		return err
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Title:    %s\n", doc.Title)
	cmd.Printf("  Type:     %s\n", doc.FileType)
	cmd.Printf("  Added:    %s\n", doc.Timestamp.Format("2006-01-02 15:04:05"))
	if doc.Size != nil {
		cmd.Printf("  Size:     %d bytes\n", *doc.Size)
	}
	if doc.URL != "" {
		cmd.Printf("  URL:      %s\n", doc.URL)
	}
	cmd.Printf("  Length:   %d characters\n", len([]rune(doc.Content)))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	result := deleteDocuments(cmd, args)
	cmd.Printf("Deleted %d of %d documents\n", result.Successful, result.Total)
	if result.Failed > 0 {
		return fmt.Errorf("%d documents could not be deleted", result.Failed)
	}
	return nil
}

// deleteDocuments deletes each id, reporting failures without stopping.
func deleteDocuments(cmd *cobra.Command, ids []string) client.DeleteResult {
	if c, ok := documentService.(*client.Client); ok {
		return c.DeleteMany(cmd.Context(), ids)
	}
	return deleteEach(cmd.Context(), ids, func(ctx context.Context, id string) error {
		doc, err := documentService.Delete(ctx, id)
		if err != nil {
			cmd.PrintErrf("Warning: %s: %v\n", id, err)
			return err
		}
		cmd.Printf("Deleted %s (%s)\n", doc.ID, doc.Title)
		return nil
	})
}

func deleteEach(ctx context.Context, ids []string, del func(context.Context, string) error) client.DeleteResult {
	result := client.DeleteResult{Total: len(ids)}
	for _, id := range ids {
		if err := del(ctx, id); err != nil {
			result.Failed++
			continue
		}
		result.Successful++
	}
	return result
}

func summaries(docs []*domain.Document) []domain.DocumentSummary {
	out := make([]domain.DocumentSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Summary())
	}
	return out
}
