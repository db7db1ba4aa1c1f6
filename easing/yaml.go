package easing

// UnmarshalYAML accepts either a bare name ("cubicOut") or a mapping with a
// name and an optional overshoot, which may be zero:
//
//	easing:
//	  name: backOut
//	  overshoot: 2.5
func (e *Equation) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		parsed, err := Parse(name)
		if err != nil {
			return err
		}
		*e = parsed
		return nil
	}

	var full struct {
		Name      string  `yaml:"name"`
		Overshoot *float64 `yaml:"overshoot"`
	}
	if err := unmarshal(&full); err != nil {
		return err
	}
	parsed, err := Parse(full.Name)
	if err != nil {
		return err
	}
	if full.Overshoot != nil {
		parsed = parsed.WithOvershoot(*full.Overshoot)
	}
	*e = parsed
	return nil
}

// MarshalYAML writes the name, plus the overshoot for back variants.
func (e Equation) MarshalYAML() (interface{}, error) {
	switch e.kind {
	case KindBackOut, KindBackIn, KindBackInOut:
		return map[string]interface{}{
			"name":      e.kind.String(),
			"overshoot": e.overshoot,
		}, nil
	}
	return e.kind.String(), nil
}
