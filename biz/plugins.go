package biz

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	slog "github.com/vearne/simplelog"

	"github.com/vearne/grpcsniff/capture"
	"github.com/vearne/grpcsniff/config"
	"github.com/vearne/grpcsniff/plugin"
)

// InOutPlugins struct for holding references to plugins
type InOutPlugins struct {
	Inputs  []PluginReader
	Outputs []PluginWriter
	All     []interface{}
}

// NewPlugins specify and initialize all available plugins
func NewPlugins(settings *config.AppSettings) (*InOutPlugins, error) {
	plugins := new(InOutPlugins)

	bpfFilter := settings.BPFFilter
	if bpfFilter == "" && len(settings.Ports) > 0 {
		bpfFilter = capture.Filter("", toPorts(settings.Ports))
	}

	// ----------input----------
	for _, path := range settings.InputPcap {
		slog.Debug("NewPcapFileInput, path:%v", path)
		if err := plugins.registerPlugin(plugin.NewPcapFileInput, path, bpfFilter); err != nil {
			return nil, err
		}
	}

	for _, path := range settings.InputPcapDir {
		if err := plugin.IsValidDir(path); err != nil {
			return nil, err
		}
		slog.Debug("NewPcapDirInput, path:%v", path)
		if err := plugins.registerPlugin(plugin.NewPcapDirInput, path, bpfFilter); err != nil {
			return nil, err
		}
	}

	for _, item := range settings.InputRAW {
		slog.Debug("options: %q", item)
		opts := capture.LiveOptions{
			Snaplen:     settings.Snaplen,
			Promiscuous: settings.Promiscuous,
			BPFFilter:   settings.BPFFilter,
		}
		if err := plugins.registerPlugin(plugin.NewRAWInput, item, opts); err != nil {
			return nil, err
		}
	}

	// ----------output----------
	if settings.OutputStdout {
		slog.Debug("NewStdOutput")
		if err := plugins.registerPlugin(plugin.NewStdOutput, settings.Codec); err != nil {
			return nil, err
		}
	}

	if settings.OutputDummy {
		if err := plugins.registerPlugin(plugin.NewDummyOutput); err != nil {
			return nil, err
		}
	}

	for _, path := range settings.OutputFileDir {
		if err := plugin.IsValidDir(path); err != nil {
			return nil, err
		}
		cf := &plugin.FileDirOutputConfig{
			MaxSize:    settings.OutputFileMaxSize,
			MaxBackups: settings.OutputFileMaxBackups,
			MaxAge:     settings.OutputFileMaxAge,
		}
		if err := plugins.registerPlugin(plugin.NewFileDirOutput, settings.Codec, path, cf); err != nil {
			return nil, err
		}
	}

	if len(settings.OutputKafkaHost) > 0 {
		cf := &plugin.OutputKafkaConfig{
			Hosts:      settings.OutputKafkaHost,
			Topic:      settings.OutputKafkaTopic,
			SASLConfig: plugin.SASLKafkaConfig{
				UseSASL:   settings.OutputKafkaSASLMechanism != "",
				Mechanism: settings.OutputKafkaSASLMechanism,
				Username:  settings.OutputKafkaSASLUser,
				Password:  settings.OutputKafkaSASLPassword,
			},
		}
		if err := plugins.registerPlugin(plugin.NewKafkaOutput, settings.Codec, cf); err != nil {
			return nil, err
		}
	}

	return plugins, nil
}

func toPorts(ports []int) []uint16 {
	res := make([]uint16, 0, len(ports))
	for _, p := range ports {
		res = append(res, uint16(p))
	}
	return res
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Automatically detects type of plugin and initialize it. Constructors
// return the plugin, optionally followed by an error.
func (plugins *InOutPlugins) registerPlugin(constructor interface{}, options ...interface{}) error {
	vc := reflect.ValueOf(constructor)

	// Pre-processing options to make it work with reflect
	vo := []reflect.Value{}
	for _, oi := range options {
		vo = append(vo, reflect.ValueOf(oi))
	}

	// Calling our constructor with list of given options
	results := vc.Call(vo)
	if len(results) == 2 && results[1].Type().Implements(errorType) && !results[1].IsNil() {
		return errors.Wrapf(results[1].Interface().(error), "create %v", vc.Type().Out(0))
	}
	plugin := results[0].Interface()

	if r, ok := plugin.(PluginReader); ok {
		plugins.Inputs = append(plugins.Inputs, r)
	}

	if w, ok := plugin.(PluginWriter); ok {
		plugins.Outputs = append(plugins.Outputs, w)
	}
	plugins.All = append(plugins.All, plugin)
	return nil
}

func (plugins *InOutPlugins) String() string {
	return fmt.Sprintf("#####  len(Inputs):%d, len(Outputs):%d, len(All):%d   #####",
		len(plugins.Inputs), len(plugins.Outputs), len(plugins.All))
}
