package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/normalisers"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage stored documents",
	Long:  `Add, list, inspect, or delete stored documents.`,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Store a document",
	Long: `Stores text under a name, replacing any previous text with that name.

The text is read from file, or from stdin when file is "-" or omitted.
The name defaults to the file name without its extension; --name is
required when reading stdin. Markdown is reduced to plain text before
it is chunked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDocumentAdd,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show document details",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentTextCmd = &cobra.Command{
	Use:   "text [name]",
	Short: "Print the document text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentText,
}

var documentChunksCmd = &cobra.Command{
	Use:   "chunks [name]",
	Short: "Print the document chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentChunks,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a document",
	Long:  `Deletes a document and everything stored for it, including cached answers.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

// Flags for document add.
var (
	documentName string
	documentType string
)

// stdinIsTerminal reports whether stdin is interactive.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func init() {
	documentAddCmd.Flags().StringVarP(&documentName, "name", "n", "",
		"name to store the document under (default: file name without extension)")
	documentAddCmd.Flags().StringVarP(&documentType, "type", "t", "",
		"MIME type of the input (default: detected from file extension)")

	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentTextCmd)
	documentCmd.AddCommand(documentChunksCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil || normaliserRegistry == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()

	source := "-"
	if len(args) == 1 {
		source = args[0]
	}

	name, err := documentNameFor(source)
	if err != nil {
		return err
	}

	raw, err := readInput(cmd, name, source)
	if err != nil {
		return err
	}

	text, err := normaliserRegistry.Normalise(ctx, raw)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	result, err := documentService.Ingest(ctx, name, text)
	if errors.Is(err, domain.ErrTextTooShort) {
		return fmt.Errorf("could not extract meaningful text from %s (scanned documents need OCR first)", describeSource(source))
	}
	if err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}

	cmd.Printf("%s Stored '%s' (%d chunks)\n", styles.Success.Render("✓"), result.Name, result.ChunkCount)
	return nil
}

// documentNameFor returns the --name flag, or the name inferred from source.
func documentNameFor(source string) (string, error) {
	if name := strings.TrimSpace(documentName); name != "" {
		return name, nil
	}
	if source == "-" {
		return "", errors.New("a name is required when reading stdin (use --name)")
	}
	return domain.NameFromPath(source), nil
}

// readInput loads the bytes for document add from a file or stdin.
func readInput(cmd *cobra.Command, name, source string) (*domain.RawDocument, error) {
	raw := &domain.RawDocument{Name: name, URI: source}

	if source == "-" {
		if stdinIsTerminal() {
			return nil, errors.New("no input: pass a file or pipe text on stdin")
		}
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		raw.Content = content
		raw.MIMEType = "text/plain"
	} else {
		content, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		raw.Content = content
		raw.MIMEType = normalisers.DetectMIMEType(source)
	}

	if documentType != "" {
		raw.MIMEType = documentType
	}
	return raw, nil
}

func describeSource(source string) string {
	if source == "-" {
		return "stdin"
	}
	return source
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents stored yet.")
		return nil
	}

	cmd.Println(styles.Title.Render(fmt.Sprintf("Documents (%d)", len(docs))))
	for _, doc := range docs {
		marker := ""
		if doc.HasSummary() {
			marker = " " + styles.Muted.Render("[summary]")
		}
		cmd.Printf("  %s  %d chunks  %s%s\n",
			doc.Name, doc.ChunkCount, doc.CreatedAt.Local().Format(time.DateTime), marker)
	}
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(context.Background(), args[0])
	if err != nil {
		return documentError(args[0], err)
	}

	cmd.Println(styles.Title.Render("Document: " + doc.Name))
	cmd.Printf("  ID:       %s\n", doc.ID)
	cmd.Printf("  Created:  %s\n", doc.CreatedAt.Local().Format(time.DateTime))
	cmd.Printf("  Chunks:   %d\n", doc.ChunkCount)
	if doc.HasSummary() {
		cmd.Printf("  Summary:  %s\n", *doc.Summary)
	} else {
		cmd.Printf("  Summary:  %s\n", styles.Muted.Render("none"))
	}
	return nil
}

func runDocumentText(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	text, err := documentService.FullText(context.Background(), args[0])
	if err != nil {
		return documentError(args[0], err)
	}

	cmd.Println(text)
	return nil
}

func runDocumentChunks(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	chunks, err := documentService.Chunks(context.Background(), args[0])
	if err != nil {
		return documentError(args[0], err)
	}

	for _, c := range chunks {
		cmd.Println(styles.Label.Render(fmt.Sprintf("[chunk %d]", c.Index)))
		cmd.Println(c.Content)
		cmd.Println()
	}
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(context.Background(), args[0]); err != nil {
		return documentError(args[0], err)
	}

	cmd.Printf("Deleted '%s'\n", args[0])
	return nil
}

// documentError turns a not-found error into a readable message.
func documentError(name string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("document '%s' not found", name)
	}
	return err
}
