package models

// Request bodies for the public HTTP API. Defaults are applied before validation.

type ForecastRequest struct {
	Arena   string `json:"arena" validate:"required,oneof=crypto"`
	Symbol  string `json:"symbol" validate:"required,max=32"`
	Horizon *int   `json:"horizon" default:"5" validate:"required,gte=1,lte=30"`
}

type RuleRequest struct {
	Field string   `json:"field" validate:"required,oneof=edge entropy drawdown"`
	Op    string   `json:"op" validate:"required,oneof=>= <="`
	Value *float64 `json:"value" validate:"required"`
}

type StrategyRequest struct {
	Arena        string        `json:"arena" validate:"required,oneof=crypto"`
	Symbol       string        `json:"symbol" validate:"required,max=32"`
	Horizon      *int          `json:"horizon" default:"5" validate:"required,gte=1,lte=30"`
	LookbackDays *int          `json:"lookback_days" default:"180" validate:"required,gte=1,lte=730"`
	Enter        []RuleRequest `json:"enter" validate:"dive"`
	Exit         []RuleRequest `json:"exit" validate:"dive"`
}

// Spec converts a validated request into a StrategySpec.
func (r *StrategyRequest) Spec() StrategySpec {
	return StrategySpec{
		Arena:        r.Arena,
		Symbol:       r.Symbol,
		Horizon:      *r.Horizon,
		LookbackDays: *r.LookbackDays,
		Enter:        toRules(r.Enter),
		Exit:         toRules(r.Exit),
	}
}

type ShareCreateRequest struct {
	Arena    string `json:"arena" validate:"required"`
	Symbol   string `json:"symbol" validate:"required,max=32"`
	Horizon  *int   `json:"horizon" validate:"required,gte=1,lte=30"`
	TTLHours *int   `json:"ttl_hours" default:"24" validate:"required,lte=8760"`
}

// Payload converts a validated request into the stored share payload.
func (r *ShareCreateRequest) Payload() SharePayload {
	return SharePayload{
		Arena:    r.Arena,
		Symbol:   r.Symbol,
		Horizon:  *r.Horizon,
		TTLHours: *r.TTLHours,
	}
}

func toRules(in []RuleRequest) []Rule {
	out := make([]Rule, 0, len(in))
	for _, r := range in {
		out = append(out, Rule{Field: r.Field, Op: r.Op, Value: *r.Value})
	}
	return out
}
