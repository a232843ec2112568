package logging

const (
	FieldComponent  = "component"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldCacheKey   = "cache_key"
	FieldBackend    = "backend"
	FieldPrincipal  = "principal"
	FieldTermYears  = "term_years"
	FieldMonths     = "months_to_payoff"
	FieldAnomaly    = "anomaly"
	FieldCounter    = "counter"
	FieldDuration   = "duration_ms"
)

const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentMortgage  = "mortgage"
	ComponentCache     = "cache"
	ComponentCounter   = "counter"
	ComponentRateLimit = "rate_limit"
	ComponentCLI       = "cli"
)

const (
	OpCalculate = "calculate"
	OpCompare   = "compare_extra"
	OpVisit     = "visit"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
