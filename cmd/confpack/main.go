// Command confpack packs JSON property trees into confpack payloads and back.
//
// The JSON document must be an array; numbers become integer properties
// (fractions are rejected), and nested arrays nest. Payloads are written as
// sealed frames so the compression codec and a payload checksum travel with
// the bytes.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/arloliu/confpack"
	"github.com/arloliu/confpack/blob"
	"github.com/arloliu/confpack/compress"
	"github.com/arloliu/confpack/errs"
	"github.com/arloliu/confpack/format"
)

const payloadVersion byte = 1

var (
	inFlag = cli.StringFlag{
		Name:  "in",
		Usage: "input file ('-' reads stdin)",
		Value: "-",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "output file ('-' writes stdout)",
		Value: "-",
	}
	compressFlag = cli.StringFlag{
		Name:  "compress",
		Usage: "outer compression codec: none, zstd, s2, lz4",
		Value: "zstd",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "enable debug logging",
	}
)

// document is the CLI's schema: one property array holding the whole tree.
type document struct {
	root []blob.Value
}

func (d *document) Version() byte { return payloadVersion }

func (d *document) Serialize(enc *blob.Encoder) {
	enc.WriteArray(d.root)
}

func (d *document) Take(dec *blob.Decoder) error {
	root, ok := dec.TakeArray()
	if !ok {
		return errs.ErrColumnExhausted
	}
	d.root = root

	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "confpack"
	app.Usage = "pack JSON property trees into bit-packed payloads"
	app.Flags = []cli.Flag{verboseFlag}
	app.Before = func(ctx *cli.Context) error {
		if ctx.GlobalBool(verboseFlag.Name) {
			log.SetLevel(log.DebugLevel)
		}

		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "pack",
			Usage:  "encode a JSON array into a sealed payload frame",
			Flags:  []cli.Flag{inFlag, outFlag, compressFlag},
			Action: packAction,
		},
		{
			Name:   "unpack",
			Usage:  "decode a sealed payload frame back to JSON",
			Flags:  []cli.Flag{inFlag, outFlag},
			Action: unpackAction,
		},
		{
			Name:   "stat",
			Usage:  "report packed, native and sealed sizes for a JSON array",
			Flags:  []cli.Flag{inFlag},
			Action: statAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func packAction(ctx *cli.Context) error {
	compression, err := format.ParseCompression(ctx.String(compressFlag.Name))
	if err != nil {
		return err
	}

	doc, err := readDocument(ctx.String(inFlag.Name))
	if err != nil {
		return err
	}

	payload, err := confpack.Marshal(doc)
	if err != nil {
		return err
	}

	frame, err := compress.Seal(payload, compression)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"properties": len(doc.root),
		"payload":    len(payload),
		"frame":      len(frame),
		"codec":      compression.String(),
	}).Debug("packed document")

	return writeOutput(ctx.String(outFlag.Name), frame)
}

func unpackAction(ctx *cli.Context) error {
	frame, err := readInput(ctx.String(inFlag.Name))
	if err != nil {
		return err
	}

	payload, err := compress.Open(frame)
	if err != nil {
		return err
	}

	var doc document
	if err := confpack.Unmarshal(payload, &doc); err != nil {
		return err
	}

	out, err := json.MarshalIndent(valuesToJSON(doc.root), "", "  ")
	if err != nil {
		return err
	}

	return writeOutput(ctx.String(outFlag.Name), append(out, '\n'))
}

func statAction(ctx *cli.Context) error {
	doc, err := readDocument(ctx.String(inFlag.Name))
	if err != nil {
		return err
	}

	enc, err := blob.NewEncoder()
	if err != nil {
		return err
	}
	enc.Begin()
	doc.Serialize(enc)
	payload := enc.Finish(nil, payloadVersion)
	native := enc.NativeSize()

	fmt.Printf("properties: %d\n", len(doc.root))
	fmt.Printf("native:     %d bytes\n", native)
	fmt.Printf("packed:     %d bytes (%.1f%% saved)\n",
		len(payload), (1-float64(len(payload))/float64(native))*100)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		frame, err := compress.Seal(payload, ct)
		if err != nil {
			return err
		}
		fmt.Printf("sealed %-4s %d bytes\n", ct.String()+":", len(frame))
	}

	return nil
}

func readDocument(path string) (*document, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("input must be a JSON array: %w", err)
	}

	root, err := valuesFromJSON(raw)
	if err != nil {
		return nil, err
	}

	return &document{root: root}, nil
}

func valuesFromJSON(raw []any) ([]blob.Value, error) {
	values := make([]blob.Value, 0, len(raw))
	for _, elem := range raw {
		switch v := elem.(type) {
		case string:
			values = append(values, blob.StringValue(v))
		case bool:
			values = append(values, blob.BoolValue(v))
		case float64:
			if v != math.Trunc(v) || v < 0 {
				return nil, fmt.Errorf("number %v: only non-negative integers are supported", v)
			}
			values = append(values, blob.IntValue(int64(v)))
		case []any:
			nested, err := valuesFromJSON(v)
			if err != nil {
				return nil, err
			}
			values = append(values, blob.ArrayValue(nested...))
		default:
			return nil, fmt.Errorf("unsupported JSON value %T", elem)
		}
	}

	return values, nil
}

func valuesToJSON(values []blob.Value) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		switch v.Kind() {
		case format.TypeString:
			out = append(out, v.Str())
		case format.TypeBool:
			out = append(out, v.Bool())
		case format.TypeInteger:
			out = append(out, v.Int())
		case format.TypeArray:
			out = append(out, valuesToJSON(v.Array()))
		}
	}

	return out
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)

		return err
	}

	return os.WriteFile(path, data, 0o644)
}
