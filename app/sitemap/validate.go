package sitemap

// Validate checks the shape of a configuration before any resolution work
// begins. It is side-effect-free: on success the pipeline proceeds with the
// configuration as-is.
func Validate(cfg *Config) error {
	if cfg.BaseURL == "" {
		if len(cfg.Routes) > 0 {
			return &ConfigurationError{Msg: "base URL is required when routes are configured"}
		}
		for _, u := range cfg.URLs {
			if !hasScheme(u.Loc) {
				return &ConfigurationError{Msg: "base URL is required when relative URL entries are configured"}
			}
		}
	}

	if err := validateMetadata("", "", &cfg.Defaults); err != nil {
		return err
	}

	for _, route := range cfg.Routes {
		if route.Path == "" {
			return validationErrf("", "", "route has an empty path")
		}
		if err := validateMetadata(route.Path, "", route.Meta); err != nil {
			return err
		}
		if route.Source != nil && len(route.Slugs) > 0 {
			return validationErrf(route.Path, "", "route has both a literal slug list and a slug source")
		}

		params := PathParams(route.Path)
		for _, slug := range route.Slugs {
			if err := validateSlug(route.Path, params, slug); err != nil {
				return err
			}
		}
	}

	for _, u := range cfg.URLs {
		if u.Loc == "" {
			return validationErrf("", "", "URL entry has an empty location")
		}
		if err := validateMetadata("", u.Loc, u.Meta); err != nil {
			return err
		}
	}

	return nil
}

func validateMetadata(route, loc string, meta *Metadata) error {
	if meta == nil {
		return nil
	}
	if !meta.ChangeFreq.IsValid() {
		return validationErrf(route, loc, "invalid change frequency %q", meta.ChangeFreq)
	}
	if meta.Priority != nil && (*meta.Priority < 0 || *meta.Priority > 1) {
		return validationErrf(route, loc, "priority %v is outside [0.0, 1.0]", *meta.Priority)
	}
	return nil
}

func validateSlug(route string, params []string, slug Slug) error {
	if err := validateMetadata(route, "", slug.Meta); err != nil {
		return err
	}

	if slug.Params == nil {
		if slug.Value == "" {
			return validationErrf(route, "", "slug has no value")
		}
		if len(params) > 1 {
			return validationErrf(route, "", "route declares %d parameters but slug %q is a single value", len(params), slug.Value)
		}
		return nil
	}

	declared := make(map[string]bool, len(params))
	for _, p := range params {
		declared[p] = true
		if slug.Params[p] == "" {
			return validationErrf(route, "", "slug is missing a value for parameter %q", p)
		}
	}
	for name := range slug.Params {
		if !declared[name] {
			return validationErrf(route, "", "slug supplies parameter %q which the path does not declare", name)
		}
	}
	return nil
}
