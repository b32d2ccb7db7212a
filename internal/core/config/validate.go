package config

import "strconv"

// Validate checks that cfg holds exactly the recognized keys, each with the
// kind its KeySpec declares. It returns cfg unchanged on success.
//
// The first problem found is reported: unrecognized keys in ascending order
// first, then recognized keys in table order.
func Validate(cfg *Configuration) (*Configuration, error) {
	for _, key := range cfg.Keys() {
		if _, ok := keyIndex[key]; !ok {
			return nil, &ValidationError{Key: key, Reason: "unrecognized key"}
		}
	}

	for _, spec := range recognizedKeys {
		v, ok := cfg.Get(spec.Name)
		if !ok {
			return nil, &ValidationError{Key: spec.Name, Expected: spec.Kind, Reason: "missing key"}
		}
		if v.Kind() != spec.Kind {
			return nil, &ValidationError{Key: spec.Name, Expected: spec.Kind, Actual: v.Shape()}
		}
		if spec.Kind == KindSet {
			for _, item := range v.items {
				if !spec.AcceptsItem(item) {
					return nil, &ValidationError{Key: spec.Name, Reason: "item " + strconv.Quote(item) + " is not allowed"}
				}
			}
		}
	}

	return cfg, nil
}
