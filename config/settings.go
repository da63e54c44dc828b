// Package config holds the settings of grpcsniff and the flag types used
// to fill them.
package config

import (
	"fmt"
	"strconv"
	"time"
)

// MultiStringOption collects every value of a repeated string flag, e.g.
// --input-pcap=a.pcap --input-pcap=b.pcap
type MultiStringOption struct {
	Params *[]string
}

func (h *MultiStringOption) String() string {
	if h.Params == nil {
		return ""
	}
	return fmt.Sprint(*h.Params)
}

// Set gets called multiple times for each flag with same name
func (h *MultiStringOption) Set(value string) error {
	if h.Params == nil {
		return nil
	}

	*h.Params = append(*h.Params, value)
	return nil
}

// MultiIntOption collects every value of a repeated integer flag.
type MultiIntOption struct {
	Params *[]int
}

func (h *MultiIntOption) String() string {
	if h.Params == nil {
		return ""
	}

	return fmt.Sprint(*h.Params)
}

// Set gets called multiple times for each flag with same name
func (h *MultiIntOption) Set(value string) error {
	if h.Params == nil {
		return nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*h.Params = append(*h.Params, val)
	return nil
}

// AppSettings is the configuration of one grpcsniff run, filled from the
// command line.
type AppSettings struct {
	ExitAfter time.Duration `json:"exit-after"`
	LogLevel  string        `json:"log-level"`

	// ######################## input #######################
	InputPcap    []string `json:"input-pcap"`
	InputPcapDir []string `json:"input-pcap-directory"`
	// {device or address}:{port,port...}
	InputRAW []string `json:"input-raw"`

	// --- capture ---
	// Ports narrows every input to TCP traffic on these ports when no
	// BPFFilter is given.
	Ports       []int  `json:"port"`
	BPFFilter   string `json:"bpf-filter"`
	Snaplen     int    `json:"snaplen"`
	Promiscuous bool   `json:"promisc"`

	// ######################## output ########################
	OutputStdout bool `json:"output-stdout"`
	OutputDummy  bool `json:"output-dummy"`

	// --- outputfile ---
	OutputFileDir []string `json:"output-file-directory"`
	// MaxSize is the maximum size in megabytes of the log file before it gets rotated.
	OutputFileMaxSize int `json:"output-file-max-size"`
	// MaxBackups is the maximum number of old log files to retain.
	OutputFileMaxBackups int `json:"output-file-max-backups"`
	// MaxAge is the maximum number of days to retain old log files based on the
	// timestamp encoded in their filename.
	OutputFileMaxAge int `json:"output-file-max-age"`

	// --- kafka ---
	OutputKafkaHost  []string `json:"output-kafka-host"`
	OutputKafkaTopic string   `json:"output-kafka-topic"`

	// SASL is enabled when a mechanism is set
	OutputKafkaSASLMechanism string `json:"output-kafka-sasl-mechanism"`
	OutputKafkaSASLUser      string `json:"output-kafka-sasl-user"`
	OutputKafkaSASLPassword  string `json:"output-kafka-sasl-password"`

	// --- filter ---
	IncludeVerdict      []string `json:"include-verdict"`
	IncludeConnMatch    string   `json:"include-conn-match"`
	ExcludeUndetermined bool     `json:"exclude-undetermined"`
	ExcludeEmptyPayload bool     `json:"exclude-empty-payload"`

	// --- rate limit ---
	// Query per second
	RateLimitQPS int `json:"rate-limit-qps"`

	// How long a decisive verdict sticks to its connection; 0 disables it.
	ConnVerdictExpire time.Duration `json:"conn-verdict-expire"`

	// --- other ---
	Codec       string `json:"codec"`
	MetricsAddr string `json:"metrics-addr"`
}
