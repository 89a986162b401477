package resolve

// Upgrade applies the upgrade-flow token rules, which differ from
// add/remove in two ways: a bare token equal to a registered provider
// name means "upgrade everything that provider manages", and remaining
// unqualified items are assigned to the configured default provider
// instead of being disambiguated interactively.
//
// isProvider reports whether a name is registered. Tokens that fail to
// parse are dropped; their errors are returned so the caller can warn
// and continue with the rest.
func Upgrade(tokens []string, isProvider func(string) bool, defaultProvider string) (fullProviders []string, groups *Groups, errs []error) {
	groups = NewGroups()

	for _, token := range tokens {
		// A whole-token provider-name match wins before any parsing.
		if isProvider(token) {
			fullProviders = append(fullProviders, token)
			continue
		}

		ref, err := ParseToken(token)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if ref.Explicit {
			groups.Add(ref.Provider, ref.Items...)
			continue
		}
		groups.Add(defaultProvider, ref.Items...)
	}

	return fullProviders, groups, errs
}
