package options

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"

	"github.com/dsascode/dsc/internal/pkg/env"
	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/log"
)

// Options manages parsed flags and ENV variables.
// Values priority, from the highest:
//  1. flag
//  2. ENV defined in OS
//  3. ".env" file from the working dir
//  4. ".env" file from the project dir
type Options struct {
	envs     *env.Map
	flags    *pflag.FlagSet
	override map[string]any
}

func NewOptions() *Options {
	return &Options{
		envs:     env.Empty(),
		override: make(map[string]any),
	}
}

// Load ENVs from OS and files.
func (o *Options) Load(logger log.Logger, osEnvs *env.Map, fs filesystem.Fs, flags *pflag.FlagSet) error {
	// ".env" file from the working dir has precedence over the project dir
	var dirs []string
	if workingDir := fs.WorkingDir(); workingDir != "" && workingDir != "." {
		dirs = append(dirs, workingDir)
	}
	dirs = append(dirs, ".")

	o.envs = env.LoadDotEnv(logger, osEnvs, fs, dirs)
	o.flags = flags
	return nil
}

// Set value manually, it has the highest priority.
func (o *Options) Set(key string, value any) {
	o.override[key] = value
}

func (o *Options) GetString(key string) string {
	return cast.ToString(o.value(key))
}

func (o *Options) GetBool(key string) bool {
	return cast.ToBool(o.value(key))
}

func (o *Options) GetInt(key string) int {
	return cast.ToInt(o.value(key))
}

// IsSet returns true if the value is defined by a flag, an ENV or manually.
func (o *Options) IsSet(key string) bool {
	if _, found := o.override[key]; found {
		return true
	}
	if o.flags != nil && o.flags.Changed(key) {
		return true
	}
	if _, found := o.envs.Lookup(env.FlagToEnv(key)); found {
		return true
	}
	return false
}

func (o *Options) value(key string) any {
	// 0. Manually set value
	if v, found := o.override[key]; found {
		return v
	}

	// 1. Flag
	if o.flags != nil {
		if flag := o.flags.Lookup(key); flag != nil && flag.Changed {
			return flag.Value.String()
		}
	}

	// 2. - 4. ENVs, from OS and files
	if v, found := o.envs.Lookup(env.FlagToEnv(key)); found {
		return v
	}

	// Flag default value
	if o.flags != nil {
		if flag := o.flags.Lookup(key); flag != nil {
			return flag.DefValue
		}
	}

	return nil
}

// Dump Options for debugging, hide sensitive values.
func (o *Options) Dump() string {
	var out strings.Builder
	out.WriteString("Parsed options:\n")

	keys := make([]string, 0, len(o.override))
	for k := range o.override {
		keys = append(keys, k)
	}
	if o.flags != nil {
		o.flags.VisitAll(func(flag *pflag.Flag) {
			keys = append(keys, flag.Name)
		})
	}
	sort.Strings(keys)

	for _, k := range keys {
		value := o.GetString(k)
		if value == "" {
			continue
		}
		if strings.Contains(k, "token") || strings.Contains(k, "key") || strings.Contains(k, "secret") {
			value = "*****"
		}
		out.WriteString(fmt.Sprintf("  %s = %s\n", k, value))
	}
	return strings.TrimRight(out.String(), "\n")
}
