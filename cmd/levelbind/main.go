package main

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/crypto/blake2b"

	"github.com/eigerco/levelbind/pkg/leveldb"
	"github.com/eigerco/levelbind/pkg/log"
)

const usage = `usage: levelbind [flags] <command> [args]

commands:
  scan <path>              print every key/value pair in key order
  get <path> <key>         print the value stored under key
  put <path> <key> <value> store value under key, creating the database if needed
  delete <path> <key>      remove key
  checksum <path>          blake2b-256 of the ordered contents
  diff <pathA> <pathB>     unified diff of the ordered contents
  version                  print the binding version

flags:
`

var errDifferent = errors.New("databases differ")

// main runs one command against a database.
// go run ./cmd/levelbind -engine pebble scan /tmp/db
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "levelbind:", err)
		}
		os.Exit(1)
	}
}

type cli struct {
	cfg    leveldb.Config
	stdout io.Writer
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("levelbind", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	engine := fs.String("engine", "", "storage engine: goleveldb, pebble or libleveldb")
	library := fs.String("library", "", "shared library to load for libleveldb")
	configPath := fs.String("config", "", "YAML file with engine and option settings")
	logLevel := fs.String("log-level", "info", "log level")
	logFormat := fs.String("log-format", "console", "log format: console or json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		return err
	}
	format, err := log.ParseLoggerType(*logFormat)
	if err != nil {
		return err
	}
	log.Init(log.Options{LogLevel: level, Type: format, Out: stderr})

	cfg := leveldb.DefaultConfig()
	if *configPath != "" {
		if cfg, err = leveldb.LoadConfigFile(*configPath); err != nil {
			return err
		}
	}
	if *engine != "" {
		if cfg.Engine, err = leveldb.ParseEngineType(*engine); err != nil {
			return err
		}
	}
	if *library != "" {
		cfg.Library = *library
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	c := cli{cfg: cfg, stdout: stdout}
	cmd, rest := fs.Arg(0), fs.Args()[1:]
	log.CLI.Debug().Str("command", cmd).Str("engine", string(cfg.Engine)).Msg("running")

	switch cmd {
	case "scan":
		if err := expectArgs(cmd, rest, 1); err != nil {
			return err
		}
		return c.scan(rest[0])
	case "get":
		if err := expectArgs(cmd, rest, 2); err != nil {
			return err
		}
		return c.get(rest[0], rest[1])
	case "put":
		if err := expectArgs(cmd, rest, 3); err != nil {
			return err
		}
		return c.put(rest[0], rest[1], rest[2])
	case "delete":
		if err := expectArgs(cmd, rest, 2); err != nil {
			return err
		}
		return c.delete(rest[0], rest[1])
	case "checksum":
		if err := expectArgs(cmd, rest, 1); err != nil {
			return err
		}
		return c.checksum(rest[0])
	case "diff":
		if err := expectArgs(cmd, rest, 2); err != nil {
			return err
		}
		return c.diff(rest[0], rest[1])
	case "version":
		_, err := fmt.Fprintln(stdout, leveldb.Version)
		return err
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func expectArgs(cmd string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: expected %d arguments, got %d", cmd, n, len(args))
	}
	return nil
}

func (c cli) open(path string, create bool) (*leveldb.Database, error) {
	opts := c.cfg.Open
	if create {
		leveldb.WithCreateIfMissing(true)(&opts)
	}
	return leveldb.Open(path, opts, c.cfg.DatabaseOptions()...)
}

// each opens path and calls fn for every pair in key order.
func (c cli) each(path string, fn func(leveldb.Key, []byte) error) (err error) {
	database, err := c.open(path, false)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, database.Close()) }()

	it, err := database.Iterate(c.cfg.Read)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, it.Close()) }()

	for key, value := range it.All() {
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return it.Err()
}

func formatPair(key leveldb.Key, value []byte) string {
	return key.String() + " = " + strconv.Quote(string(value)) + "\n"
}

func (c cli) scan(path string) error {
	return c.each(path, func(key leveldb.Key, value []byte) error {
		_, err := io.WriteString(c.stdout, formatPair(key, value))
		return err
	})
}

func (c cli) get(path, key string) (err error) {
	database, err := c.open(path, false)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, database.Close()) }()

	value, err := database.Get([]byte(key), c.cfg.Read)
	if err != nil {
		return fmt.Errorf("get %q: %w", key, err)
	}
	_, err = fmt.Fprintf(c.stdout, "%s\n", value)
	return err
}

func (c cli) put(path, key, value string) (err error) {
	database, err := c.open(path, true)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, database.Close()) }()

	return database.Put([]byte(key), []byte(value), c.cfg.Write)
}

func (c cli) delete(path, key string) (err error) {
	database, err := c.open(path, false)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, database.Close()) }()

	return database.Delete([]byte(key), c.cfg.Write)
}

// checksum hashes each pair as a 4 byte big-endian key length, the key, a
// 4 byte value length and the value.
func (c cli) checksum(path string) error {
	h, err := blake2b.New256(nil)
	if err != nil {
		return err
	}

	var n int
	var lenBuf [4]byte
	err = c.each(path, func(key leveldb.Key, value []byte) error {
		binary.BigEndian.PutUint32(lenBuf[:], uint32(key.Len()))
		h.Write(lenBuf[:])
		h.Write(key.Bytes())
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(value)))
		h.Write(lenBuf[:])
		h.Write(value)
		n++
		return nil
	})
	if err != nil {
		return err
	}

	log.CLI.Info().Str("path", path).Int("pairs", n).Msg("checksum computed")
	_, err = fmt.Fprintf(c.stdout, "%s  %s\n", hex.EncodeToString(h.Sum(nil)), path)
	return err
}

func (c cli) dump(path string) ([]string, error) {
	var sb strings.Builder
	err := c.each(path, func(key leveldb.Key, value []byte) error {
		sb.WriteString(formatPair(key, value))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return difflib.SplitLines(sb.String()), nil
}

// diff prints a unified diff of both databases and fails with errDifferent
// when they are not equal.
func (c cli) diff(pathA, pathB string) error {
	a, err := c.dump(pathA)
	if err != nil {
		return err
	}
	b, err := c.dump(pathB)
	if err != nil {
		return err
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: pathA,
		ToFile:   pathB,
		Context:  3,
	})
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	if _, err := io.WriteString(c.stdout, text); err != nil {
		return err
	}
	return errDifferent
}
