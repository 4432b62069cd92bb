package codec

// Params carries algorithm-specific parameters into a Factory as a generic
// key/value map. Typed getters return the zero value when the key is absent
// or has an unexpected type; factories validate ranges themselves.
type Params map[string]interface{}

// GetString returns a string parameter.
func (p Params) GetString(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// GetInt returns an integer parameter. Float values holding an integral
// number are accepted, which keeps parameters round-trippable through JSON.
func (p Params) GetInt(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return 0
}

// GetFloat returns a floating-point parameter.
func (p Params) GetFloat(key string) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}
