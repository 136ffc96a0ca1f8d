// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/wavetermdev/htmlvdom/pkg/hconfig"
	"github.com/wavetermdev/htmlvdom/pkg/htmlnode"
	"github.com/wavetermdev/htmlvdom/pkg/htmlvdom"
	"github.com/wavetermdev/htmlvdom/pkg/panichandler"
	"github.com/wavetermdev/htmlvdom/pkg/propinfo"
	"github.com/wavetermdev/htmlvdom/pkg/util/utilfn"
	"golang.org/x/sync/errgroup"
)

// these are set at build time
var Html2VDomVersion = "0.0.0"
var BuildTime = "0"

const StdinFileName = "-"

var rootCmd = &cobra.Command{
	Use:          "html2vdom",
	Short:        "html2vdom - convert HTML into vdom elements",
	Long:         `html2vdom converts HTML fragments into vdom element JSON, mapping attributes to framework props.`,
	SilenceUsage: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert [file|-]...",
	Short: "Convert HTML files (or stdin) to vdom JSON",
	RunE:  convertRun,
}

var propsCmd = &cobra.Command{
	Use:   "props <tag> [attr...]",
	Short: "List the known properties of a tag, or show how attributes map to props",
	Args:  cobra.MinimumNArgs(1),
	RunE:  propsRun,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		barr, err := hconfig.GenerateSchema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(barr))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print html2vdom version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "v%s (%s)\n", Html2VDomVersion, BuildTime)
	},
}

var convertFlags struct {
	ConfigFile   string
	Parser       string
	Preserve     []string
	RawTags      []string
	StyleObjects bool
	MinifyStyle  bool
	Compact      bool
	Watch        bool
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&convertFlags.ConfigFile, "config", "c", "", "config file (json or yaml), defaults to $"+hconfig.ConfigEnvName)
	rootCmd.PersistentFlags().StringVar(&convertFlags.Parser, "parser", "", "html parser: html (default) or token")
	rootCmd.PersistentFlags().StringSliceVar(&convertFlags.Preserve, "preserve", nil, "attribute names to pass through unchanged")
	convertCmd.Flags().StringSliceVar(&convertFlags.RawTags, "raw-tag", nil, "tags whose inner markup is passed as dangerouslySetInnerHTML (default style)")
	convertCmd.Flags().BoolVar(&convertFlags.StyleObjects, "style-objects", false, "convert style attributes into style objects")
	convertCmd.Flags().BoolVar(&convertFlags.MinifyStyle, "minify-style", false, "minify <style> contents")
	convertCmd.Flags().BoolVar(&convertFlags.Compact, "compact", false, "print compact (single line) JSON")
	convertCmd.Flags().BoolVarP(&convertFlags.Watch, "watch", "w", false, "reconvert files when they change")
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(propsCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig(cmd *cobra.Command) (*hconfig.ConfigType, error) {
	configFile := configFileName()
	cfg := &hconfig.ConfigType{}
	if configFile != "" {
		var err error
		cfg, err = hconfig.ReadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("parser") {
		cfg.Parser = convertFlags.Parser
	}
	if flags.Changed("preserve") {
		cfg.PreserveAttributes = utilfn.DedupStrings(append(cfg.PreserveAttributes, utilfn.SplitCommaList(convertFlags.Preserve)...))
	}
	if flags.Changed("raw-tag") {
		cfg.DangerouslySetChildren = utilfn.SplitCommaList(convertFlags.RawTags)
		if cfg.DangerouslySetChildren == nil {
			cfg.DangerouslySetChildren = []string{}
		}
	}
	if flags.Changed("style-objects") {
		cfg.StyleObjects = convertFlags.StyleObjects
	}
	if flags.Changed("minify-style") {
		cfg.MinifyStyle = convertFlags.MinifyStyle
	}
	if flags.Changed("compact") {
		cfg.Compact = convertFlags.Compact
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readInput(fileName string, stdin io.Reader) (string, error) {
	if fileName == StdinFileName {
		barr, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("cannot read stdin: %w", err)
		}
		return string(barr), nil
	}
	barr, err := os.ReadFile(fileName)
	if err != nil {
		return "", fmt.Errorf("cannot read input: %w", err)
	}
	return string(barr), nil
}

func marshalResult(result any, compact bool) (string, error) {
	if compact {
		return utilfn.MarshalIndentNoHTMLString(result, "", "")
	}
	return utilfn.MarshalIndentNoHTMLString(result, "", "  ")
}

func convertFile(converter *htmlvdom.Converter, fileName string, stdin io.Reader, compact bool) (rtnStr string, rtnErr error) {
	defer func() {
		panicErr := panichandler.PanicHandler("convert "+fileName, recover())
		if panicErr != nil {
			rtnErr = panicErr
		}
	}()
	htmlStr, err := readInput(fileName, stdin)
	if err != nil {
		return "", err
	}
	result, err := converter.Convert(htmlStr)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fileName, err)
	}
	return marshalResult(result, compact)
}

// converts all files concurrently, the outputs are in input order
func convertFiles(converter *htmlvdom.Converter, fileNames []string, stdin io.Reader, compact bool) ([]string, error) {
	outputs := make([]string, len(fileNames))
	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for idx, fileName := range fileNames {
		eg.Go(func() error {
			output, err := convertFile(converter, fileName, stdin, compact)
			if err != nil {
				return err
			}
			outputs[idx] = output
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func convertRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fileNames := args
	if len(fileNames) == 0 {
		fileNames = []string{StdinFileName}
	}
	if convertFlags.Watch {
		for _, fileName := range fileNames {
			if fileName == StdinFileName {
				return errors.New("--watch cannot be used with stdin")
			}
		}
	}
	converter := htmlvdom.MakeConverter(cfg.MakeOptions())
	outputs, err := convertFiles(converter, fileNames, cmd.InOrStdin(), cfg.Compact)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, output := range outputs {
		fmt.Fprintln(out, output)
	}
	if !convertFlags.Watch {
		return nil
	}
	return watchFiles(cmd, converter, fileNames, cfg.Compact)
}

func configFileName() string {
	if convertFlags.ConfigFile != "" {
		return convertFlags.ConfigFile
	}
	return os.Getenv(hconfig.ConfigEnvName)
}

// reconverts a file when it changes, a config change reloads the config and reconverts everything.
// onChange callbacks are serialized by the watcher.
func watchFiles(cmd *cobra.Command, converter *htmlvdom.Converter, fileNames []string, compact bool) error {
	ctx, cancelFn := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancelFn()
	out := cmd.OutOrStdout()
	printFile := func(fileName string) {
		output, err := convertFile(converter, fileName, nil, compact)
		if err != nil {
			log.Printf("[html2vdom] %v\n", err)
			return
		}
		fmt.Fprintln(out, output)
	}
	watchNames := fileNames
	var configAbsName string
	if configName := configFileName(); configName != "" {
		absName, err := filepath.Abs(configName)
		if err != nil {
			return fmt.Errorf("cannot resolve %q: %w", configName, err)
		}
		configAbsName = absName
		watchNames = append(slices.Clone(fileNames), configName)
	}
	watcher, err := hconfig.MakeWatcher(watchNames, func(fileName string) {
		if fileName != configAbsName {
			printFile(fileName)
			return
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			log.Printf("[html2vdom] config not reloaded: %v\n", err)
			return
		}
		log.Printf("[html2vdom] reloaded config %s\n", fileName)
		converter = htmlvdom.MakeConverter(cfg.MakeOptions())
		compact = cfg.Compact
		for _, name := range fileNames {
			printFile(name)
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Close()
	log.Printf("[html2vdom] watching %s\n", strings.Join(watchNames, ", "))
	watcher.Run(ctx)
	return nil
}

func makeCache(cfg *hconfig.ConfigType) *propinfo.Cache {
	if cache := cfg.MakeOptions().Cache; cache != nil {
		return cache
	}
	return propinfo.Default()
}

func propsRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cache := makeCache(cfg)
	out := cmd.OutOrStdout()
	tag := strings.ToLower(args[0])
	if len(args) == 1 {
		for _, propName := range cache.PropNames(tag) {
			isBool := cache.IsBoolean(tag, propName)
			if isBool {
				fmt.Fprintf(out, "%s (boolean)\n", propName)
			} else {
				fmt.Fprintln(out, propName)
			}
		}
		return nil
	}
	preserve := make(map[string]bool)
	for _, name := range cfg.PreserveAttributes {
		preserve[name] = true
	}
	for _, attrName := range args[1:] {
		props := htmlvdom.MapAttributes(cache, tag, []htmlnode.Attr{{Name: attrName}}, preserve)
		for propName, propVal := range props {
			if _, isBool := propVal.(bool); isBool {
				fmt.Fprintf(out, "%s => %s (boolean)\n", attrName, propName)
			} else {
				fmt.Fprintf(out, "%s => %s\n", attrName, propName)
			}
		}
	}
	return nil
}

func loadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[html2vdom] cannot load .env: %v\n", err)
	}
}

func main() {
	log.SetFlags(0)
	loadDotEnv()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
