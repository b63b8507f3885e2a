// Command tapeconv converts Turing machine transition tables between the
// two-way-infinite tape model and the Sipser one-way tape model.
package main

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"

	"github.com/tapetools/tapeconv/core/convert"
	"github.com/tapetools/tapeconv/core/digest"
	"github.com/tapetools/tapeconv/core/history"
	"github.com/tapetools/tapeconv/core/machine"
	"github.com/tapetools/tapeconv/internal/logging"
	"github.com/tapetools/tapeconv/internal/tablefile"
	"github.com/tapetools/tapeconv/internal/validation"
)

const version = "0.1.0"

// defaultInput is used when no path argument is given.
const defaultInput = "example.in"

// CLI defines the command-line interface for tapeconv.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" enum:"debug,info,warn,error" default:"warn"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" enum:"text,json" default:"text"`
	History   string `name:"history" help:"Record conversions in a SQLite database at this path" type:"path"`

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert a table to the opposite tape model"`
	Log     LogCmd     `cmd:"" help:"List recorded conversions"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ConvertCmd converts one table file and writes the result next to it.
type ConvertCmd struct {
	Path string `arg:"" optional:"" help:"Table file to convert (.in or .in.xz)" default:"${default_input}"`
}

func (c *ConvertCmd) Run() error {
	if err := validation.CheckInputPath(c.Path); err != nil {
		logging.ValidationError(c.Path, err)
		return err
	}

	text, err := tablefile.Read(c.Path)
	if err != nil {
		return err
	}

	m, err := machine.Parse(text)
	if err != nil {
		logging.ValidationError(c.Path, err)
		return err
	}
	logging.ConversionStart(c.Path, m.Model().Name(), m.Len())

	start := time.Now()
	out, err := convert.Convert(m)
	if err != nil {
		return err
	}

	outText := machine.Serialize(out)
	outPath := tablefile.OutputPath(c.Path)
	inDigest := digest.Table(text)
	outDigest := digest.Table(outText)

	if err := tablefile.Write(outPath, outText); err != nil {
		return err
	}
	logging.ConversionDone(outPath, out.Model().Name(), out.Len(), time.Since(start),
		"input_digest", digest.Short(inDigest),
		"output_digest", digest.Short(outDigest))

	if CLI.History != "" {
		if err := recordConversion(m, out, c.Path, outPath, inDigest, outDigest); err != nil {
			return err
		}
	}

	fmt.Printf("%s (%s, %d transitions) -> %s (%s, %d transitions) [%s]\n",
		c.Path, m.Model().Name(), m.Len(),
		outPath, out.Model().Name(), out.Len(),
		digest.Short(outDigest))
	return nil
}

func recordConversion(in, out *machine.Machine, inPath, outPath, inDigest, outDigest string) error {
	store, err := history.Open(CLI.History)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Append(history.Record{
		SourceModel:  in.Model().Name(),
		TargetModel:  out.Model().Name(),
		InputPath:    inPath,
		OutputPath:   outPath,
		InputDigest:  inDigest,
		OutputDigest: outDigest,
	})
	return err
}

// LogCmd prints the conversion history, newest first.
type LogCmd struct{}

func (c *LogCmd) Run() error {
	if CLI.History == "" {
		return fmt.Errorf("no history database given (use --history)")
	}
	store, err := history.Open(CLI.History)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List()
	if err != nil {
		return err
	}
	for _, r := range recs {
		fmt.Printf("%s  %s -> %s  %s -> %s  [%s]\n",
			r.ConvertedAt.Format(time.RFC3339),
			r.SourceModel, r.TargetModel,
			r.InputPath, r.OutputPath,
			digest.Short(r.OutputDigest))
	}
	return nil
}

// VersionCmd prints version and driver information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("tapeconv version %s (sqlite driver: %s)\n", version, history.DriverType())
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tapeconv"),
		kong.Description("Turing machine tape model converter"),
		kong.UsageOnError(),
		kong.Vars{"default_input": defaultInput},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
