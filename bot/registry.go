package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Context carries everything a prefix command handler needs for one
// invocation.
type Context struct {
	Session *discordgo.Session
	Message *discordgo.MessageCreate
	Args    []string
	Prefix  string
}

// Command describes a registered prefix command. Metadata is validated
// once at registration and immutable afterwards.
type Command struct {
	Name        string
	Aliases     []string
	Description string

	OwnerOnly   bool
	Maintenance bool
	NSFW        bool
	Cooldown    time.Duration

	UserPermissions int64
	BotPermissions  int64

	Run func(ctx *Context) error
}

// ComponentHandler handles button/menu/modal interactions whose custom id
// starts with the registered route prefix.
type ComponentHandler func(s *discordgo.Session, i *discordgo.InteractionCreate)

// Registry maps command names, aliases and component custom-id prefixes to
// handlers. Populated once at startup and read-only afterwards, so lookups
// need no locking.
type Registry struct {
	commands   map[string]*Command
	aliases    map[string]*Command
	components map[string]ComponentHandler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		commands:   make(map[string]*Command),
		aliases:    make(map[string]*Command),
		components: make(map[string]ComponentHandler),
	}
}

// Register adds a command, validating its descriptor
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil || cmd.Run == nil {
		return fmt.Errorf("command must have a Run callback")
	}

	name := strings.ToLower(strings.TrimSpace(cmd.Name))
	if name == "" || strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("command name must be a single word, got %q", cmd.Name)
	}
	if cmd.Cooldown < 0 {
		return fmt.Errorf("command %s: cooldown must not be negative", name)
	}
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}
	if _, exists := r.aliases[name]; exists {
		return fmt.Errorf("command %s collides with a registered alias", name)
	}

	for _, alias := range cmd.Aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias == "" {
			return fmt.Errorf("command %s: empty alias", name)
		}
		if _, exists := r.commands[alias]; exists {
			return fmt.Errorf("command %s: alias %s collides with a command", name, alias)
		}
		if _, exists := r.aliases[alias]; exists {
			return fmt.Errorf("command %s: alias %s already registered", name, alias)
		}
	}

	cmd.Name = name
	r.commands[name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[strings.ToLower(strings.TrimSpace(alias))] = cmd
	}

	return nil
}

// MustRegister panics on a bad descriptor; startup-time only
func (r *Registry) MustRegister(cmd *Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// Lookup finds a command by exact name, then by alias. Nil when unknown.
func (r *Registry) Lookup(name string) *Command {
	name = strings.ToLower(name)
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// Commands returns all registered commands
func (r *Registry) Commands() []*Command {
	out := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	return out
}

// RegisterComponent routes interactions whose custom id starts with prefix
func (r *Registry) RegisterComponent(prefix string, handler ComponentHandler) error {
	if prefix == "" || handler == nil {
		return fmt.Errorf("component route needs a prefix and a handler")
	}
	if _, exists := r.components[prefix]; exists {
		return fmt.Errorf("component route %s already registered", prefix)
	}
	r.components[prefix] = handler
	return nil
}

// MustRegisterComponent panics on a bad route; startup-time only
func (r *Registry) MustRegisterComponent(prefix string, handler ComponentHandler) {
	if err := r.RegisterComponent(prefix, handler); err != nil {
		panic(err)
	}
}

// ResolveComponent finds the handler for a component custom id
func (r *Registry) ResolveComponent(customID string) ComponentHandler {
	for prefix, handler := range r.components {
		if strings.HasPrefix(customID, prefix) {
			return handler
		}
	}
	return nil
}
