package damages

// pipeline is evaluated in order; later components read the amounts earlier
// ones produced.
var pipeline = []struct {
	name      string
	component Component
}{
	{"medical", &MedicalComponent{}},
	{"lost_wages", &WagesComponent{}},
	{"non_economic", &NonEconomicComponent{}},
	{"additions", &AdditionsComponent{}},
	{"survival_action", &SurvivalComponent{}},
}

var registry = func() map[string]Component {
	m := make(map[string]Component, len(pipeline))
	for _, p := range pipeline {
		m[p.name] = p.component
	}
	return m
}()

func Get(name string) (Component, bool) {
	c, ok := registry[name]
	return c, ok
}

// Pipeline returns the components in evaluation order.
func Pipeline() []Component {
	out := make([]Component, len(pipeline))
	for i, p := range pipeline {
		out[i] = p.component
	}
	return out
}

// Names returns the component names in evaluation order.
func Names() []string {
	out := make([]string, len(pipeline))
	for i, p := range pipeline {
		out[i] = p.name
	}
	return out
}
