// Package database manages the optional SQL connection used for run history.
//
// It wraps GORM with the MySQL driver for shared deployments and the SQLite
// driver for local use and tests. The connection is optional: callers log a
// warning and continue without history when Connect fails.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
