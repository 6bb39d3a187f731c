package config

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// ConfigureLogging applies the log section of the options to commonlog.
func ConfigureLogging(o *Options) {
	var path *string
	if o.Log.File != "" {
		file := o.Log.File
		path = &file
	}
	commonlog.Configure(o.Log.Verbosity, path)
}
