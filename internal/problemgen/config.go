package problemgen

// Config controls the LLMGenerator.
type Config struct {
	// Validators run in order on every candidate; the first failure
	// rejects it.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxRounds bounds how many requests are made to fill one set.
	MaxRounds int

	// MaxUsedInPrompt caps the "already used" list sent to the model.
	MaxUsedInPrompt int
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators:      DefaultValidators(),
		MaxTokens:       2048,
		Temperature:     0.7,
		MaxRounds:       3,
		MaxUsedInPrompt: 20,
	}
}
