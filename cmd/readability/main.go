package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/clarity-reader/readability"
)

var (
	outputFormat    string
	outputFile      string
	baseURL         string
	charThreshold   int
	nbTopCandidates int
	keepClasses     bool
	disableJSONLD   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "readability",
		Short: "Extract the main article from an HTML document",
		Long:  "readability reads an HTML document from a file or stdin and extracts its title, content, and plain text, discarding navigation and boilerplate",
	}

	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an HTML document and print the extracted article",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runParse,
	}

	parseCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json|html|text)")
	parseCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	parseCmd.Flags().StringVar(&baseURL, "base-url", "", "Base URL for resolving relative links and images")
	parseCmd.Flags().IntVar(&charThreshold, "char-threshold", 0, "Minimum extracted text length before the retry loop gives up (default 500)")
	parseCmd.Flags().IntVar(&nbTopCandidates, "top-candidates", 0, "Number of scoring candidates retained (default 5)")
	parseCmd.Flags().BoolVar(&keepClasses, "keep-classes", false, "Preserve all class attributes instead of stripping them")
	parseCmd.Flags().BoolVar(&disableJSONLD, "disable-jsonld", false, "Skip the JSON-LD metadata pass")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("readability v0.1.0")
		},
	}

	rootCmd.AddCommand(parseCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	opts := []readability.Option{}
	if baseURL != "" {
		opts = append(opts, readability.WithBaseURL(baseURL))
	}
	if charThreshold > 0 {
		opts = append(opts, readability.WithCharThreshold(charThreshold))
	}
	if nbTopCandidates > 0 {
		opts = append(opts, readability.WithNbTopCandidates(nbTopCandidates))
	}
	if keepClasses {
		opts = append(opts, readability.WithKeepClasses(true))
	}
	if disableJSONLD {
		opts = append(opts, readability.WithDisableJSONLD(true))
	}

	result, err := readability.ParseBytes(raw, opts...)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	out := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return formatResult(out, result)
}

// readInput reads HTML from the named file argument, or from stdin when
// no file is given. It never fetches a URL; network retrieval is out of
// scope for this tool.
func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func formatResult(w io.Writer, result *readability.Result) error {
	switch outputFormat {
	case "html":
		_, err := fmt.Fprintln(w, result.Content)
		return err
	case "text":
		_, err := fmt.Fprintln(w, result.TextContent)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
}
