package handlers

import "fmt"

// DefaultHandlers returns the full set of specialized handlers in the
// registration order used by DefaultRegistry. Order matters only for
// breaking exact confidence ties (registry.go's selectWinner keeps the
// first-registered strictly-highest candidate), so narrower formats are
// listed ahead of broader ones they could otherwise tie with.
func DefaultHandlers() []Handler {
	return []Handler{
		NewSAMLHandler(),
		NewSOAPHandler(),
		NewMavenPOMHandler(),
		NewIvyHandler(),
		NewAntBuildHandler(),
		NewSCAPHandler(),
		NewS1000DHandler(),
		NewSpringHandler(),
		NewHibernateHandler(),
		NewStrutsHandler(),
		NewLog4jHandler(),
		NewPropertiesHandler(),
		NewDocBookHandler(),
		NewXHTMLHandler(),
		NewSVGHandler(),
		NewKMLHandler(),
		NewGPXHandler(),
		NewGraphMLHandler(),
		NewSitemapHandler(),
		NewWADLHandler(),
		NewXLIFFHandler(),
		NewServiceNowHandler(),
		NewTestReportHandler(),
		NewRSSHandler(),
		NewGenericHandler(),
	}
}

// NewRegistryFromNames builds a registry restricted to the named
// handlers, in the given order (handler registry configuration,
// spec.md §6). An unknown name is an error rather than a silent skip,
// since a typo in config should not silently narrow dispatch.
func NewRegistryFromNames(threshold float64, names []string) (*Registry, error) {
	byName := make(map[string]Handler, len(DefaultHandlers()))
	for _, h := range DefaultHandlers() {
		byName[h.Name()] = h
	}

	ordered := make([]Handler, 0, len(names))
	for _, name := range names {
		h, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown handler name %q", name)
		}
		ordered = append(ordered, h)
	}
	return NewRegistry(threshold, ordered...), nil
}
