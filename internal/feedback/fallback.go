// ABOUTME: Generator that recovers from a failing primary with a secondary.
// ABOUTME: Used to put the deterministic classifier behind the remote service.
package feedback

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Fallback tries Primary and, on error, returns Secondary's result.
type Fallback struct {
	Primary   Generator
	Secondary Generator
	Logger    logrus.FieldLogger
}

// Generate implements Generator.
func (f *Fallback) Generate(ctx context.Context, s Snapshot) (Document, error) {
	if f.Primary != nil {
		doc, err := f.Primary.Generate(ctx, s)
		if err == nil {
			return doc, nil
		}
		f.logger().WithError(err).WithField("athlete", s.FirstName).
			Warn("feedback generator failed, falling back")
	}
	return f.Secondary.Generate(ctx, s)
}

func (f *Fallback) logger() logrus.FieldLogger {
	if f.Logger == nil {
		return logrus.StandardLogger()
	}
	return f.Logger
}
