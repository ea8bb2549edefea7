package logging

import (
	"strings"
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain field helpers
func Component(name string) Field {
	return String("component", name)
}

func SessionID(id string) Field {
	return String("session_id", id)
}

// Rotors records the inserted rotor names, reflector first.
func Rotors(names []string) Field {
	return String("rotors", strings.Join(names, " "))
}

// Fingerprint records a digest of a key setting instead of the setting itself.
func Fingerprint(fp string) Field {
	return String("fingerprint", fp)
}

func Plugs(n int) Field {
	return Int("plugs", n)
}

func Line(n int) Field {
	return Int("line", n)
}

func Symbols(n int) Field {
	return Int("symbols", n)
}

func Path(p string) Field {
	return String("path", p)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
