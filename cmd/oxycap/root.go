package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagPcapFile  string
	flagIface     string
	flagLinkType  uint32
	flagMTU       int
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "oxycap",
	Short: "Decode captured Ethernet frames into a readable table",
	Long: `oxycap decodes Ethernet frames replayed from a pcap savefile or read
from an already-open live capture handle, walking each frame's protocol
chain (Ethernet, ARP/IPv4/IPv6/LLC, TCP/UDP/ICMP/IGMP) and printing one
table row per decoded layer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDecode,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (YAML) supplying defaults for unset flags")
	rootCmd.Flags().StringVar(&flagPcapFile, "pcap", "", "path to a pcap savefile to replay")
	rootCmd.Flags().StringVar(&flagIface, "iface", "", "path to an already-open live capture handle to read frames from")
	rootCmd.Flags().Uint32Var(&flagLinkType, "linktype", linkTypeEthernet, "link-layer type of frames read from --iface")
	rootCmd.Flags().IntVar(&flagMTU, "mtu", 1500, "maximum frame size to read from --iface")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&flagLogFormat, "log-format", "text", "log format: text, json, logfmt")
}

func newLogger(format, level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	switch format {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	default:
		logger.SetFormatter(log.TextFormatter)
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
