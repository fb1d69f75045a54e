package notify

// Reporter pushes training reports to an external channel.
type Reporter interface {
	// Report sends the given report body under a title.
	Report(title, body string) error
}

// Void is a noop reporter.
type Void struct {
}

func (v Void) Report(title, body string) error {
	return nil
}

// NewVoid creates a new noop reporter.
func NewVoid() *Void {
	return &Void{}
}
