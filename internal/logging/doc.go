// Package logging provides structured logging for neutron.
//
// It wraps Go's log/slog to write JSON-formatted entries to a debug.log file
// so that a launch or quit that went wrong on the desktop can be
// reconstructed afterwards: every submitted command is logged with the
// capability and phase that issued it.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/tmp/neutron", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("session launched", "workspace", "3")
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	l := logger.WithProject("/home/me/Sites/acme/shop/neutron.yml").
//	    WithPhase("launch").
//	    WithCapability("layout")
//	l.Debug("command submitted", "command", cmd)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"command submitted","project":"...","phase":"launch","capability":"layout","command":"..."}
//
// # Thread Safety
//
// [Logger] is safe for concurrent use. Child loggers created via With*
// methods share the underlying writer.
package logging
