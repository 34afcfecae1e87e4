// Package main provides the seedscan CLI tool for auditing the addresses
// a BIP39 mnemonic controls across chain ecosystems.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/complex-gh/seedscan"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	maxWidth = 72

	checkDelay = 500 * time.Millisecond
)

var (
	baseStyle  = lipgloss.NewStyle().Margin(0, 0, 1, 2) //nolint:mnd
	red        = lipgloss.Color(completeColor("#FF4444", "196", "9"))
	errorStyle = baseStyle.
			Foreground(red).
			Background(lipgloss.AdaptiveColor{Light: completeColor("#FFEBEB", "255", "7"), Dark: completeColor("#2B1A1A", "235", "8")}).
			Padding(1, 2) //nolint:mnd

	language   string
	count      int
	familyStr  string
	jsonPath   string
	configPath string
	check      bool
	assumeYes  bool
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "seedscan [mnemonic-file]",
		Short: "Derive and audit addresses from a BIP39 seed phrase",
		Long: `Derive the addresses a BIP39 seed phrase controls across six chain
families (evm, solana, bitcoin, stacks, sui, aptos) and optionally check
them for balances via public chain APIs.

For each family several derivation path conventions are tried, matching
what different wallet applications would have produced from the same
phrase. Derivation is fully offline; no network request is made unless
--check is given.

SECURITY TIP: Prefer the interactive prompt or a pipe over writing the
phrase to a file. When typing commands that contain secrets, add a space
before the command to keep it out of your shell history.`,
		Example: `  seedscan
  seedscan --count 10
  seedscan --family evm,solana
  echo "abandon abandon ... about" | seedscan --count 3
  seedscan phrase.txt --check --json report.json
  seedscan --check --yes --config endpoints.yaml`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging()

			if err := seedscan.SetLanguage(language); err != nil {
				return err
			}
			if count < 1 || count > 100 {
				return fmt.Errorf("invalid count %d: must be between 1 and 100", count)
			}
			families, err := parseFamilies(familyStr)
			if err != nil {
				return err
			}

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			mnemonic, err := readMnemonic(path)
			if err != nil {
				return err
			}
			mnemonic = seedscan.NormalizeMnemonic(mnemonic)
			if !seedscan.ValidMnemonic(mnemonic) {
				return formatStyledError(fmt.Errorf("invalid mnemonic: expected 12 or 24 wordlist words with a valid checksum"))
			}

			return runAudit(cmd.Context(), mnemonic, families)
		},
	}

	manCmd = &cobra.Command{
		Use:          "man",
		Args:         cobra.NoArgs,
		Short:        "generate man pages",
		Hidden:       true,
		SilenceUsage: true,
		RunE: func(*cobra.Command, []string) error {
			manPage, err := mcobra.NewManPage(1, rootCmd)
			if err != nil {
				//nolint: wrapcheck
				return err
			}
			manPage = manPage.WithSection("Copyright", "(C) 2025-2026 complex (complex@ft.hn)\n"+
				"Released under MIT license.")
			fmt.Println(manPage.Build(roff.NewDocument()))
			return nil
		},
	}

	// completionCmd generates shell completion scripts for bash, zsh, fish, and powershell.
	completionCmd = &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion script for seedscan.

To load completions:

Bash:
  $ source <(seedscan completion bash)

Zsh:
  $ seedscan completion zsh > "${fpath[1]}/_seedscan"

Fish:
  $ seedscan completion fish | source

PowerShell:
  PS> seedscan completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		SilenceUsage:          true,
		RunE: func(_ *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unknown shell: %s", args[0])
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&language, "language", "l", "en", "Wordlist language for mnemonic validation")
	rootCmd.PersistentFlags().IntVarP(&count, "count", "n", 5, "Number of address indices to derive per family (1-100)")
	rootCmd.PersistentFlags().StringVarP(&familyStr, "family", "f", "", "Chain families to audit (comma-separated: evm,solana,bitcoin,stacks,sui,aptos)")
	rootCmd.PersistentFlags().StringVar(&jsonPath, "json", "", "Write a JSON report to this file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file overriding chain API endpoints")
	rootCmd.PersistentFlags().BoolVar(&check, "check", false, "Query public chain APIs for balances")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt before network calls")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(manCmd)
	rootCmd.AddCommand(completionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// parseFamilies parses the --family flag. An empty flag selects all six
// families in canonical order.
func parseFamilies(s string) ([]seedscan.Family, error) {
	if strings.TrimSpace(s) == "" {
		return seedscan.Families(), nil
	}

	known := make(map[seedscan.Family]bool)
	for _, f := range seedscan.Families() {
		known[f] = true
	}

	var families []seedscan.Family
	seen := make(map[seedscan.Family]bool)
	for _, part := range strings.Split(s, ",") {
		f := seedscan.Family(strings.ToLower(strings.TrimSpace(part)))
		if part == "" {
			continue
		}
		if !known[f] {
			return nil, fmt.Errorf("unknown family %q (valid: evm, solana, bitcoin, stacks, sui, aptos)", part)
		}
		if !seen[f] {
			seen[f] = true
			families = append(families, f)
		}
	}
	if len(families) == 0 {
		return seedscan.Families(), nil
	}
	return families, nil
}

// readMnemonic obtains the seed phrase from a file argument, a stdin
// pipe, or a hidden terminal prompt, in that order. The phrase is never
// accepted as a command line argument.
func readMnemonic(path string) (string, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path) //nolint:gosec
		if err != nil {
			return "", fmt.Errorf("could not read mnemonic file: %w", err)
		}
		return string(data), nil
	}

	if fi, _ := os.Stdin.Stat(); path == "-" || (fi.Mode()&os.ModeNamedPipe) != 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("could not read mnemonic from stdin: %w", err)
		}
		return string(data), nil
	}

	return promptMnemonic()
}

// promptMnemonic reads the phrase from the terminal without echo.
func promptMnemonic() (string, error) {
	_, _ = fmt.Fprint(os.Stderr, "Enter seed phrase (input hidden): ")
	defer fmt.Fprintf(os.Stderr, "\n")
	t, err := tty.Open()
	if err != nil {
		return "", fmt.Errorf("could not open tty: %w", err)
	}
	defer t.Close()                                       //nolint: errcheck
	phrase, err := term.ReadPassword(int(t.Input().Fd())) //nolint: gosec
	if err != nil {
		return "", fmt.Errorf("could not read seed phrase: %w", err)
	}
	return string(phrase), nil
}

// confirmCheck asks before touching the network. Derived addresses are
// about to be sent to third-party APIs; that deserves an explicit yes.
func confirmCheck(total int) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return false, fmt.Errorf("refusing to query chain APIs without a terminal; pass --yes to confirm")
	}

	fmt.Printf("About to query public chain APIs for %d addresses. The addresses\n", total)
	fmt.Printf("(never any key material) will be visible to those API operators.\n")
	fmt.Print("Continue? [y/N]: ")

	t, err := tty.Open()
	if err != nil {
		return false, fmt.Errorf("could not open tty: %w", err)
	}
	defer t.Close() //nolint: errcheck
	line, err := bufio.NewReader(t.Input()).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("could not read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// runAudit derives the address set, prints it, and optionally checks
// balances and writes the report.
func runAudit(ctx context.Context, mnemonic string, families []seedscan.Family) error {
	if ctx == nil {
		ctx = context.Background()
	}

	schemes := make([]seedscan.Scheme, 0, len(families))
	for _, f := range families {
		scheme, ok := seedscan.SchemeFor(f)
		if !ok {
			return fmt.Errorf("no derivation scheme for family %q", f)
		}
		schemes = append(schemes, scheme)
	}

	engine := seedscan.NewEngine(schemes...)
	set, err := engine.Derive(mnemonic, count)
	if err != nil {
		return formatStyledError(err)
	}

	for _, f := range families {
		fmt.Printf("[%s addresses]\n", f)
		fmt.Println()
		for _, addr := range set[f] {
			fmt.Println(addr)
		}
		fmt.Println()
	}

	if !check {
		if jsonPath != "" {
			report := seedscan.NewReport()
			for _, f := range families {
				report.AddAddresses(f, f.NativeSymbol(), set[f])
			}
			if err := report.WriteJSON(jsonPath); err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", jsonPath)
		}
		return nil
	}

	total := 0
	for _, f := range families {
		total += len(set[f])
	}
	ok, err := confirmCheck(total)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Aborted.")
		return nil
	}

	endpoints := seedscan.DefaultEndpoints()
	if configPath != "" {
		endpoints, err = seedscan.LoadEndpoints(configPath)
		if err != nil {
			return err
		}
	}

	prices := seedscan.NewPriceFeed(endpoints.Price)
	if err := prices.Fetch(ctx); err != nil {
		log.Warn().Err(err).Msg("price lookup failed; USD values will be zero")
	}

	report := seedscan.NewReport()
	for _, f := range families {
		checker := endpoints.Checker(f)
		if checker == nil {
			return fmt.Errorf("no balance checker for family %q", f)
		}
		fmt.Printf("Checking %d %s addresses...\n", len(set[f]), f)
		report.Add(f, seedscan.CheckAddresses(ctx, checker, set[f], checkDelay, prices))
	}

	fmt.Println()
	fmt.Printf("[summary]\n")
	fmt.Println()
	fmt.Printf("%d addresses checked, %d with activity, total value $%.2f\n",
		report.Totals.Addresses, report.Totals.Active, report.Totals.USDValue)
	for _, f := range families {
		for _, b := range report.Families[f] {
			if b.HasActivity || b.Error != "" {
				suffix := ""
				if b.Error != "" {
					suffix = " (error: " + b.Error + ")"
				}
				fmt.Printf("%s %s %s%s\n", b.Address, b.Native, b.Symbol, suffix)
			}
		}
	}

	if jsonPath != "" {
		if err := report.WriteJSON(jsonPath); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", jsonPath)
	}
	return nil
}

func getWidth(maxw int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd())) //nolint: gosec
	if err != nil || w > maxw {
		return maxWidth
	}
	return w
}

func renderBlock(w io.Writer, s lipgloss.Style, width int, str string) {
	_, _ = io.WriteString(w, s.Width(width).Render(str))
	_, _ = io.WriteString(w, "\n")
}

// formatStyledError shows the error in a styled block on a terminal and
// returns a plain error so the command exits non-zero.
func formatStyledError(err error) error {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		b := strings.Builder{}
		w := getWidth(maxWidth)

		b.WriteRune('\n')
		renderBlock(&b, errorStyle, w, err.Error())
		b.WriteRune('\n')

		fmt.Print(b.String())
	}
	return err
}

func completeColor(truecolor, ansi256, ansi string) string {
	//nolint: exhaustive
	switch lipgloss.ColorProfile() {
	case termenv.TrueColor:
		return truecolor
	case termenv.ANSI256:
		return ansi256
	}
	return ansi
}
