package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"respdto/pkg/envelope"
)

func newUserCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "user NAME AGE",
		Short: "Render a single-user response",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			age, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid age %q: %w", args[1], err)
			}
			b := envelope.For(UserDTO{Name: args[0], Age: age}).Message("Fetched user")
			return ctx.render(cmd, b)
		},
	}
}

func newUsersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Render a paginated user listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := envelope.For(samplePaginatedUsers()).
				Status(200).
				Message("Fetched users").
				Action("get users").
				Add("id", 123).
				Metadata(map[string]any{
					"total":  300,
					"page":   10,
					"length": 30,
				})
			return ctx.render(cmd, b)
		},
	}
}

type buildOptions struct {
	status    int
	success   bool
	message   string
	typ       string
	action    string
	meta      []string
	fields    []string
	payload   string
	requestID bool
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Assemble an envelope from flags",
		Long: "Assemble an envelope from flags. --success is applied after --status, " +
			"and --set may overwrite any named field.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := opts.builder(cmd)
			if err != nil {
				return err
			}
			return ctx.render(cmd, b)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.status, "status", "s", envelope.DefaultStatus, "Status code; success is derived from it")
	flags.BoolVar(&opts.success, "success", true, "Override the derived success flag")
	flags.StringVarP(&opts.message, "message", "m", "", "Message")
	flags.StringVarP(&opts.typ, "type", "t", "", "Type")
	flags.StringVarP(&opts.action, "action", "a", "", "Action")
	flags.StringArrayVar(&opts.meta, "meta", nil, "Metadata entry key=value (repeatable)")
	flags.StringArrayVar(&opts.fields, "set", nil, "Extra field key=value (repeatable, may shadow named fields)")
	flags.StringVar(&opts.payload, "payload", "", "JSON object attached as payload")
	flags.BoolVar(&opts.requestID, "request-id", false, "Add a generated request_id field")

	return cmd
}

func (o *buildOptions) builder(cmd *cobra.Command) (*envelope.Builder, error) {
	b := envelope.New()
	if o.payload != "" {
		var payload map[string]any
		if err := json.Unmarshal([]byte(o.payload), &payload); err != nil {
			return nil, fmt.Errorf("invalid --payload: %w", err)
		}
		b = envelope.For(payload)
	}

	flags := cmd.Flags()
	if flags.Changed("status") {
		b.Status(o.status)
	}
	if flags.Changed("success") {
		b.Success(o.success)
	}
	if flags.Changed("message") {
		b.Message(o.message)
	}
	if flags.Changed("type") {
		b.Type(o.typ)
	}
	if flags.Changed("action") {
		b.Action(o.action)
	}
	if len(o.meta) > 0 {
		meta, err := parseAssignments(o.meta)
		if err != nil {
			return nil, fmt.Errorf("invalid --meta: %w", err)
		}
		b.Metadata(meta)
	}
	if o.requestID {
		b.Add("request_id", uuid.NewString())
	}

	for _, kv := range o.fields {
		key, value, err := splitAssignment(kv)
		if err != nil {
			return nil, fmt.Errorf("invalid --set: %w", err)
		}
		b.Add(key, value)
	}
	return b, nil
}

func parseAssignments(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, kv := range pairs {
		key, value, err := splitAssignment(kv)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}

// splitAssignment parses key=value. The value is read as a YAML scalar so 123
// becomes an int and true a bool; anything else stays a string.
func splitAssignment(kv string) (string, any, error) {
	key, raw, ok := strings.Cut(kv, "=")
	if !ok || key == "" {
		return "", nil, fmt.Errorf("expected key=value, got %q", kv)
	}
	return key, scalarValue(raw), nil
}

func scalarValue(raw string) any {
	if raw == "" {
		return ""
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch v.(type) {
	case map[string]any, []any:
		return raw
	}
	return v
}
