package prints

import (
	"github.com/sirupsen/logrus"

	"github.com/FabianaFerreira/modified-newton/system"
)

// LogObserver logs every iteration at debug level.
func LogObserver(entry *logrus.Entry) system.Observer {
	return func(it system.Iteration) {
		entry.WithFields(logrus.Fields{
			"k":    it.K,
			"f1":   it.F[0],
			"f2":   it.F[1],
			"norm": it.Norm,
			"x":    it.Point.X,
			"y":    it.Point.Y,
		}).Debug("iteration")
	}
}

// Chain calls every observer in order, skipping nil ones.
func Chain(observers ...system.Observer) system.Observer {
	return func(it system.Iteration) {
		for _, o := range observers {
			if o != nil {
				o(it)
			}
		}
	}
}
