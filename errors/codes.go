package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resolution errors (not retryable), raised before any model call fires.
const (
	// ErrCodeUnknownIdentifier indicates a positional argument that matches no
	// known provider, model, or alias token and cannot be the prompt.
	ErrCodeUnknownIdentifier ErrorCode = "UNKNOWN_IDENTIFIER"
	// ErrCodeUnknownProvider indicates a provider name absent from the catalog.
	ErrCodeUnknownProvider ErrorCode = "UNKNOWN_PROVIDER"
	// ErrCodeUnknownModel indicates a model name or alias the provider doesn't offer.
	ErrCodeUnknownModel ErrorCode = "UNKNOWN_MODEL"
	// ErrCodeMissingPrompt indicates a call that supplied no prompt where one is required.
	ErrCodeMissingPrompt ErrorCode = "MISSING_PROMPT"
)

// Template errors (not retryable)
const (
	// ErrCodeMissingVariable indicates a template placeholder with no value in scope.
	ErrCodeMissingVariable ErrorCode = "MISSING_VARIABLE"
	// ErrCodeMalformedTemplate indicates unbalanced or invalid placeholder syntax.
	ErrCodeMalformedTemplate ErrorCode = "MALFORMED_TEMPLATE"
)

// Pipeline errors
const (
	// ErrCodeMissingContextKey indicates a step input key that is unset at execution time.
	ErrCodeMissingContextKey ErrorCode = "MISSING_CONTEXT_KEY"
	// ErrCodeBuilderValidation indicates Build() was called on an invalid step sequence.
	ErrCodeBuilderValidation ErrorCode = "BUILDER_VALIDATION"
)

// External errors
const (
	// ErrCodeModelInvocation indicates the external LLM call failed (retryable).
	ErrCodeModelInvocation ErrorCode = "MODEL_INVOCATION"
	// ErrCodeConfigInvalid indicates configuration that failed validation.
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// retryableCodes is the set of codes that represent transient failures.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeModelInvocation: true,
}

// IsRetryableCode reports whether the code represents a transient failure.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
