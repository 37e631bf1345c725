package logging

import "time"

// Generic field constructors.

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Latency(value time.Duration) Field {
	return Field{Key: "latency", Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain field constructors.

func RunID(id string) Field {
	return Field{Key: "run_id", Value: id}
}

func ModelID(id string) Field {
	return Field{Key: "model_id", Value: id}
}

func Compartment(cid string) Field {
	return Field{Key: "compartment", Value: cid}
}

func ReactionSet(name string) Field {
	return Field{Key: "reaction_set", Value: name}
}

func Ports(n int) Field {
	return Field{Key: "ports", Value: n}
}

func Groups(n int) Field {
	return Field{Key: "groups", Value: n}
}

func Enzymes(n int) Field {
	return Field{Key: "enzymes", Value: n}
}

func Reactions(n int) Field {
	return Field{Key: "reactions", Value: n}
}

func Path(p string) Field {
	return Field{Key: "path", Value: p}
}
