package input

type Options struct {
	// Method is used when no METHOD argument is given.
	Method      Method
	JSONMessage string
	ReadStdin   bool
}
