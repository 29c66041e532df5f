package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jedel1043/oxycap/capture"
	"github.com/jedel1043/oxycap/display"
	"github.com/spf13/cobra"
)

func runDecode(cmd *cobra.Command, args []string) error {
	cfg, err := loadFileConfig(flagConfig)
	if err != nil {
		return fmt.Errorf("oxycap: reading config file: %w", err)
	}

	flags := cmd.Flags()
	pcapFile := flagPcapFile
	if !flags.Changed("pcap") {
		pcapFile = firstNonEmpty(envOr("OXYCAP_PCAP_FILE", ""), cfg.PcapFile)
	}
	iface := flagIface
	if !flags.Changed("iface") {
		iface = firstNonEmpty(envOr("OXYCAP_IFACE", ""), cfg.Interface)
	}
	logLevel := flagLogLevel
	if !flags.Changed("log-level") {
		logLevel = firstNonEmpty(envOr("OXYCAP_LOG_LEVEL", ""), cfg.LogLevel, "info")
	}
	logFormat := flagLogFormat
	if !flags.Changed("log-format") {
		logFormat = firstNonEmpty(envOr("OXYCAP_LOG_FORMAT", ""), cfg.LogFormat, "text")
	}

	logger := newLogger(logFormat, logLevel)

	if pcapFile == "" && iface == "" {
		return errors.New("oxycap: one of --pcap or --iface is required")
	}
	if pcapFile != "" && iface != "" {
		return errors.New("oxycap: --pcap and --iface are mutually exclusive")
	}

	var rows []display.Row
	switch {
	case pcapFile != "":
		rows, err = decodeSavefile(logger, pcapFile)
	default:
		rows, err = decodeLiveDevice(logger, iface, flagLinkType, flagMTU)
	}
	if err != nil {
		return err
	}

	display.Table(os.Stdout, rows)
	return nil
}

func decodeSavefile(logger *log.Logger, path string) ([]display.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("oxycap: opening savefile: %w", err)
	}
	defer f.Close()

	rd, err := capture.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("oxycap: reading savefile header: %w", err)
	}

	var rows []display.Row
	for i := 0; ; i++ {
		rec, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("oxycap: reading record %d: %w", i, err)
		}
		frameRows, err := decodeFrame(rec.LinkType, rec.Data)
		if err != nil {
			logger.Warn("failed to decode frame", "index", i, "err", err)
			continue
		}
		logger.Debug("decoded frame", "index", i, "timestamp", rec.Timestamp, "layers", len(frameRows))
		rows = append(rows, frameRows...)
	}
	return rows, nil
}

func decodeLiveDevice(logger *log.Logger, path string, linkType uint32, mtu int) ([]display.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("oxycap: opening live handle: %w", err)
	}
	defer f.Close()

	dev := capture.NewDevice(f, linkType, mtu)
	var rows []display.Row
	for i := 0; ; i++ {
		now := time.Now()
		frm, err := dev.ReadFrame(now.Unix(), int64(now.Nanosecond()/1000))
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("oxycap: reading live frame %d: %w", i, err)
		}
		frameRows, err := decodeFrame(frm.LinkType, frm.Data)
		if err != nil {
			logger.Warn("failed to decode frame", "index", i, "err", err)
			continue
		}
		logger.Debug("decoded frame", "index", i, "timestamp", frm.Timestamp, "layers", len(frameRows))
		rows = append(rows, frameRows...)
	}
	return rows, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
