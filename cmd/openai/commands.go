package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vnmchuo/openai-go/config"
	"github.com/vnmchuo/openai-go/pkg/openai"
)

const usage = `openai is a command-line client for the OpenAI API.

Usage:
  openai <command> [flags] [text...]

Commands:
  complete   Complete a prompt
  edit       Rewrite input following -instruction
  chat       Send a user message (and optional -system message)
  image      Generate images from a prompt
  embed      Embed each argument

Run "openai <command> -h" to list a command's flags.`

type cli struct {
	client *openai.Client
	models config.ModelDefaults
}

type command func(c *cli, ctx context.Context, args []string, out io.Writer) error

var commands = map[string]command{
	"complete": (*cli).complete,
	"edit":     (*cli).edit,
	"chat":     (*cli).chat,
	"image":    (*cli).image,
	"embed":    (*cli).embed,
}

func isHelp(arg string) bool {
	return arg == "help" || arg == "-h" || arg == "--help"
}

// execute dispatches args[0]. c may be nil when only help or an unknown command
// can be served.
func execute(ctx context.Context, args []string, out io.Writer, c *cli) error {
	if len(args) == 0 || isHelp(args[0]) {
		fmt.Fprintln(out, strings.TrimSpace(usage))
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q\n\n%s", args[0], usage)
	}
	if c == nil {
		return errors.New("client is not configured")
	}
	return cmd(c, ctx, args[1:], out)
}

func (c *cli) complete(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("complete")
	tf := bindTunables(fs)
	if done, err := parse(fs, args); done || err != nil {
		return err
	}

	opts, err := tf.options(c.models.Completion)
	if err != nil {
		return err
	}
	resp, err := c.client.Completion(ctx, strings.Join(fs.Args(), " "), opts...)
	if err != nil {
		return err
	}
	return printJSON(out, resp)
}

func (c *cli) edit(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("edit")
	tf := bindTunables(fs)
	instruction := fs.String("instruction", "", "what to do with the input, e.g. \"Fix the spelling\"")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}

	opts, err := tf.options(c.models.Edit)
	if err != nil {
		return err
	}
	resp, err := c.client.Edit(ctx, *instruction, strings.Join(fs.Args(), " "), opts...)
	if err != nil {
		return err
	}
	return printJSON(out, resp)
}

func (c *cli) chat(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("chat")
	tf := bindTunables(fs)
	system := fs.String("system", "", "optional system message")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}

	var messages []openai.ChatMessage
	if *system != "" {
		messages = append(messages, openai.SystemMessage(*system))
	}
	messages = append(messages, openai.UserMessage(strings.Join(fs.Args(), " ")))

	opts, err := tf.options(c.models.Chat)
	if err != nil {
		return err
	}
	resp, err := c.client.Chat(ctx, messages, opts...)
	if err != nil {
		return err
	}
	return printJSON(out, resp)
}

func (c *cli) image(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("image")
	n := fs.Int("n", 1, "number of images")
	size := fs.String("size", "", "1024x1024, 512x512 or 256x256")
	format := fs.String("format", "", "url or b64_json")
	user := fs.String("user", "", "end-user identifier")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}

	set := setFlags(fs)
	opts := []openai.Option{
		openai.WithImageSize(openai.ImageSize(*size)),
		openai.WithImageFormat(openai.ImageFormat(*format)),
	}
	if set["n"] {
		opts = append(opts, openai.WithN(*n))
	}
	if set["user"] {
		opts = append(opts, openai.WithUser(*user))
	}

	resp, err := c.client.Image(ctx, strings.Join(fs.Args(), " "), opts...)
	if err != nil {
		return err
	}
	return printJSON(out, resp)
}

func (c *cli) embed(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("embed")
	model := fs.String("model", "", "model name")
	user := fs.String("user", "", "end-user identifier")
	if done, err := parse(fs, args); done || err != nil {
		return err
	}

	var opts []openai.Option
	if name := firstNonEmpty(*model, c.models.Embedding); name != "" {
		opts = append(opts, openai.WithModel(openai.ParseModel(name)))
	}
	if setFlags(fs)["user"] {
		opts = append(opts, openai.WithUser(*user))
	}

	resp, err := c.client.Embedding(ctx, fs.Args(), opts...)
	if err != nil {
		return err
	}
	return printJSON(out, resp)
}

type tunableFlags struct {
	fs               *flag.FlagSet
	model            string
	maxTokens        int
	temperature      float64
	topP             float64
	n                int
	stop             string
	presencePenalty  float64
	frequencyPenalty float64
	logitBias        string
	user             string
}

func bindTunables(fs *flag.FlagSet) *tunableFlags {
	t := &tunableFlags{fs: fs}
	fs.StringVar(&t.model, "model", "", "model name (defaults to the operation's default)")
	fs.IntVar(&t.maxTokens, "max-tokens", 0, "maximum tokens to generate")
	fs.Float64Var(&t.temperature, "temperature", 0, "sampling temperature")
	fs.Float64Var(&t.topP, "top-p", 0, "nucleus sampling probability mass")
	fs.IntVar(&t.n, "n", 0, "number of choices")
	fs.StringVar(&t.stop, "stop", "", "comma-separated stop sequences")
	fs.Float64Var(&t.presencePenalty, "presence-penalty", 0, "presence penalty")
	fs.Float64Var(&t.frequencyPenalty, "frequency-penalty", 0, "frequency penalty")
	fs.StringVar(&t.logitBias, "logit-bias", "", "token:bias pairs, e.g. 50256:-100,198:5")
	fs.StringVar(&t.user, "user", "", "end-user identifier")
	return t
}

// options turns explicitly set flags into call options. Unset flags are left
// out so the API applies its defaults.
func (t *tunableFlags) options(defaultModel string) ([]openai.Option, error) {
	set := setFlags(t.fs)
	var opts []openai.Option

	if name := firstNonEmpty(t.model, defaultModel); name != "" {
		opts = append(opts, openai.WithModel(openai.ParseModel(name)))
	}
	if set["max-tokens"] {
		opts = append(opts, openai.WithMaxTokens(t.maxTokens))
	}
	if set["temperature"] {
		opts = append(opts, openai.WithTemperature(t.temperature))
	}
	if set["top-p"] {
		opts = append(opts, openai.WithTopP(t.topP))
	}
	if set["n"] {
		opts = append(opts, openai.WithN(t.n))
	}
	if set["stop"] {
		opts = append(opts, openai.WithStop(strings.Split(t.stop, ",")...))
	}
	if set["presence-penalty"] {
		opts = append(opts, openai.WithPresencePenalty(t.presencePenalty))
	}
	if set["frequency-penalty"] {
		opts = append(opts, openai.WithFrequencyPenalty(t.frequencyPenalty))
	}
	if set["logit-bias"] {
		bias, err := parseLogitBias(t.logitBias)
		if err != nil {
			return nil, err
		}
		opts = append(opts, openai.WithLogitBias(bias))
	}
	if set["user"] {
		opts = append(opts, openai.WithUser(t.user))
	}
	return opts, nil
}

func parseLogitBias(s string) (map[int]float64, error) {
	bias := make(map[int]float64)
	for _, pair := range strings.Split(s, ",") {
		tok, val, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			return nil, fmt.Errorf("logit bias %q must be token:bias", pair)
		}
		id, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("logit bias token %q: %w", tok, err)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("logit bias value %q: %w", val, err)
		}
		bias[id] = v
	}
	return bias, nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// parse reports done when help was requested.
func parse(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return true, fmt.Errorf("parse %s flags: %w", fs.Name(), err)
	}
	return false, nil
}

func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
