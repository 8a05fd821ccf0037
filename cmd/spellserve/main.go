/*
Package main implements the spellserve CLI and IPC server.

spellserve is a Hunspell-compatible spellchecking engine. It loads an
affix description (.aff) and a word list (.dic), and answers three
questions about any token: is it spelled correctly, what are plausible
corrections, and which dictionary stems produced it.

# Usage

Check words from the command line:

	spellserve check -a en_US.aff -d en_US.dic hello wrold

Get suggestions for a misspelling:

	spellserve suggest -a en_US.aff -d en_US.dic wrold

Run the interactive debugging REPL:

	spellserve repl -a en_US.aff -d en_US.dic

Compile the word list into a msgpack cache for faster loads:

	spellserve compile -a en_US.aff -d en_US.dic -o en_US.dic.bin

Start the JSON IPC server on stdin/stdout:

	spellserve serve -a en_US.aff -d en_US.dic

# Configuration

Runtime configuration is managed through a TOML file holding default
dictionary paths, server limits and CLI defaults:

	[paths]
	aff = "dicts/en_US.aff"
	dic = "dicts/en_US.dic"

	[server]
	max_word_len = 96
	report_timing = true

The config file is created with defaults on first run; the --config flag
overrides its location.

# IPC Protocol

The server communicates via line-oriented JSON over stdin/stdout:

	{"command": "check", "word": "hello"}
	{"word": "hello", "correct": true, "forbidden": false, "warn": false, "time_us": 87}

See pkg/server for the full protocol description.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/spellserve/internal/cli"
	"github.com/bastiangx/spellserve/pkg/config"
	"github.com/bastiangx/spellserve/pkg/server"
	"github.com/bastiangx/spellserve/pkg/speller"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0"
	AppName = "spellserve"
	gh      = "https://github.com/bastiangx/spellserve"
)

var (
	flagAff    string
	flagDic    string
	flagCache  string
	flagConfig string
	flagDebug  bool

	appConfig *config.Config
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: "Hunspell-compatible spellchecking engine",
		Long:  `spellserve checks spelling and generates corrections from Hunspell affix and dictionary files.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				log.SetLevel(log.DebugLevel)
				log.SetReportTimestamp(true)
			} else {
				log.SetLevel(log.WarnLevel)
			}
			appConfig, _, _ = config.LoadConfigWithPriority(flagConfig)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flagAff, "aff", "a", "", "Affix description file (.aff)")
	rootCmd.PersistentFlags().StringVarP(&flagDic, "dic", "d", "", "Word list file (.dic)")
	rootCmd.PersistentFlags().StringVar(&flagCache, "cache", "", "Compiled dictionary cache (.bin), used instead of --dic")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Toggle debug mode")

	rootCmd.AddCommand(createCheckCmd())
	rootCmd.AddCommand(createSuggestCmd())
	rootCmd.AddCommand(createAnalyzeCmd())
	rootCmd.AddCommand(createCompileCmd())
	rootCmd.AddCommand(createReplCmd())
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadSpeller builds the engine from flags, falling back to config paths.
func loadSpeller() *speller.Speller {
	if appConfig == nil {
		appConfig = config.DefaultConfig()
	}
	paths, err := appConfig.ResolveDictPaths(flagAff, flagDic, flagCache)
	if err != nil {
		log.Fatalf("%v", err)
		os.Exit(1)
	}

	var sp *speller.Speller
	if paths.UseCache() {
		sp, err = speller.LoadCompiled(paths.Aff, paths.Cache)
	} else {
		sp, err = speller.Load(paths.Aff, paths.Dic)
	}
	if err != nil {
		log.Fatalf("Failed to load dictionaries: %v", err)
		os.Exit(1)
	}
	return sp
}

func createCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [words...]",
		Short: "Check the spelling of one or more words",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			sp := loadSpeller()
			anyWrong := false
			for _, word := range args {
				res := sp.Lookup(word)
				verdict := "ok"
				if !res.Correct {
					verdict = "MISSPELLED"
					anyWrong = true
				}
				if res.Forbidden {
					verdict += " (forbidden)"
				}
				if res.Warn {
					verdict += " (warn)"
				}
				fmt.Printf("%s: %s\n", word, verdict)
			}
			if anyWrong {
				os.Exit(1)
			}
		},
	}
}

func createSuggestCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest [word]",
		Short: "Suggest corrections for a misspelled word",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			sp := loadSpeller()
			suggestions := sp.Suggest(args[0])
			if limit > 0 && len(suggestions) > limit {
				suggestions = suggestions[:limit]
			}
			if len(suggestions) == 0 {
				fmt.Println("(no suggestions)")
				return
			}
			for _, s := range suggestions {
				fmt.Println(s)
			}
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum suggestions to print (0 for all)")
	return cmd
}

func createAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [word]",
		Short: "Show the stems and morphology of a word",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			sp := loadSpeller()
			word := args[0]
			stems := sp.Stems(word)
			if len(stems) == 0 {
				fmt.Printf("%s: no accepted readings\n", word)
				return
			}
			for _, stem := range stems {
				fmt.Printf("stem: %s\n", stem)
			}
			for _, data := range sp.Data(word) {
				for key, values := range data {
					for _, v := range values {
						fmt.Printf("  %s: %s\n", key, v)
					}
				}
			}
		},
	}
}

func createCompileCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the word list into a msgpack cache",
		Run: func(cmd *cobra.Command, args []string) {
			sp := loadSpeller()
			if output == "" {
				dicPath := flagDic
				if dicPath == "" {
					dicPath = appConfig.Paths.Dic
				}
				output = dicPath + ".bin"
			}
			if err := sp.CompileCache(output); err != nil {
				log.Fatalf("Failed to compile dictionary: %v", err)
				os.Exit(1)
			}
			fmt.Printf("Compiled %d words to %s\n", len(sp.Dic().Words), output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: <dic>.bin)")
	return cmd
}

func createReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive word checking, useful for testing and debugging",
		Run: func(cmd *cobra.Command, args []string) {
			sp := loadSpeller()
			log.SetReportTimestamp(false)
			handler := cli.NewInputHandler(sp, appConfig.CLI.SuggestLimit, appConfig.CLI.ShowStems)
			if err := handler.Start(); err != nil {
				log.Fatalf("CLI error: %v", err)
				os.Exit(1)
			}
		},
	}
}

func createServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON IPC server on stdin/stdout",
		Run: func(cmd *cobra.Command, args []string) {
			sp := loadSpeller()
			showStartupInfo()
			srv := server.NewServer(sp, appConfig)
			if err := srv.Start(); err != nil {
				log.Fatalf("Failed to start server: %v", err)
				os.Exit(1)
			}
		},
	}
}

func createVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show current version",
		Run: func(cmd *cobra.Command, args []string) {
			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportCaller:    false,
				ReportTimestamp: false,
				Prefix:          "",
			})

			styles := log.DefaultStyles()
			styles.Values["version"] = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
			styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
			logger.SetStyles(styles)

			logger.Print("")
			logger.Print("[ spellserve ] Hunspell-compatible spellchecking!")
			logger.Print("", "version", Version)
			logger.Print("")
			logger.Print("use -h or --help to see available options")
			logger.Print("Github Repo", "gh", gh)
		},
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo() {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("============")
	println(" spellserve ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Info("status: ready")
	println("============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
