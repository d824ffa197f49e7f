// Package log builds the slog loggers used by medphys.
//
// Reports carry the state registration numbers (SPN) of the physicists who
// signed them and the serial number of the calibrated detector. Those values
// belong in the workbook, not in a terminal scrollback or a shared log file,
// so SecureHandler masks them wherever they are logged:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Info("signoff", "tested_by_spn", "12345") // tested_by_spn=***REDACTED***
//
// Keys named spn, ending in _spn or _sn, or containing password or secret
// are masked, including inside groups. String values that look like tokens
// (bearer, basic, JWT, long opaque strings) or carry DSN credentials are
// masked whatever their key.
package log
