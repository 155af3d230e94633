package main

import (
	"fmt"
	"os"
	"path/filepath"

	"cardsh/internal/access"
	"cardsh/internal/kernel"
	"cardsh/internal/netio"
	"cardsh/internal/tui"
	"cardsh/internal/vfs"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "abulka",
		Repository: "cardsh",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\nUpdate available: %s (installed: %s)\n", res.Current, currentVer)
		fmt.Println("Get it at https://github.com/abulka/cardsh/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("cardsh %s is up to date.\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cardsh [options]\n\n")
		fmt.Fprintf(os.Stderr, "cardsh is a pocket shell for a battery-powered handheld, runnable on\n")
		fmt.Fprintf(os.Stderr, "a development host. The device filesystem is backed by a host directory\n")
		fmt.Fprintf(os.Stderr, "and persists between runs.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  cardsh                    # Start the interactive shell\n")
		fmt.Fprintf(os.Stderr, "  cardsh --script s.pbash   # Run a batch script and exit\n")
		fmt.Fprintf(os.Stderr, "  cardsh --report           # Print a system report to stdout\n")
	}

	rootFlag := pflag.StringP("root", "d", "", "Host directory backing the device filesystem (default ~/.cardsh)")
	configFlag := pflag.StringP("config", "c", "", "Device path of the config file (default /config.json)")
	scriptFlag := pflag.StringP("script", "s", "", "Run a batch script headless and exit")
	reportFlag := pflag.BoolP("report", "r", false, "Print a system report to stdout and exit")
	readonlyFlag := pflag.Bool("readonly", false, "Mount the primary medium read-only (external mount stays writable)")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("cardsh version %s\n", kernel.Version)
		return
	}

	if *updateFlag {
		checkUpdate(kernel.Version)
		return
	}

	root := *rootFlag
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving home directory: %v\n", err)
			os.Exit(1)
		}
		root = filepath.Join(home, ".cardsh")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", root, err)
		os.Exit(1)
	}

	factory := func(term kernel.Terminal) *kernel.Kernel {
		fs := vfs.NewDirFS(root)
		fs.SetReadOnly(*readonlyFlag)
		return kernel.New(kernel.Options{
			FS:   fs,
			Term: term,
			Radio: &netio.HostRadio{
				Neighborhood: []netio.Network{
					{SSID: "home-2.4G", RSSI: -48},
					{SSID: "workshop", RSSI: -67},
				},
			},
			Dev:        kernel.HostDevice{},
			Runner:     &kernel.ExecRunner{Interpreter: "python3", HostPath: fs.HostPath},
			ConfigPath: *configFlag,
			Policy:     access.DefaultPolicy(),
			SearchPath: []string{"/bin", "/sd/bin"},
		})
	}

	if *reportFlag || *scriptFlag != "" {
		runHeadless(factory, *scriptFlag, *reportFlag)
		return
	}

	m := tui.NewModel(factory)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}

// stdoutTerm is the headless console: plain lines on stdout, no styling.
type stdoutTerm struct{}

func (stdoutTerm) Print(text string, _ ...lipgloss.Style) { fmt.Println(text) }
func (stdoutTerm) Clear()                                 {}

func runHeadless(factory tui.KernelFactory, script string, report bool) {
	k := factory(stdoutTerm{})
	k.Boot()

	if script != "" {
		if err := k.RunScript(script); err != nil {
			os.Exit(1)
		}
	}
	if report {
		fmt.Println(k.Report())
	}
}
