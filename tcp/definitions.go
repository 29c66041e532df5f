package tcp

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

const sizeHeader = 20

var (
	errShort      = errors.New("tcp: short buffer")
	errBadOffset  = errors.New("tcp: data offset below minimum of 5")
	errShortOpts  = errors.New("tcp: short TCP options")
	errBadOptSize = errors.New("tcp: bad TCP option size")
)

// Flags is the TCP flags bit-mask (RFC 793 plus the NS/CWR/ECE additions).
type Flags uint16

const (
	FlagFIN Flags = 1 << iota // FlagFIN - No more data from sender.
	FlagSYN                   // FlagSYN - Synchronize sequence numbers.
	FlagRST                   // FlagRST - Reset the connection.
	FlagPSH                   // FlagPSH - Push function.
	FlagACK                   // FlagACK - Acknowledgment field significant.
	FlagURG                   // FlagURG - Urgent pointer field significant.
	FlagECE                   // FlagECE - ECN-Echo has a nonce-sum in the SYN/ACK.
	FlagCWR                   // FlagCWR - Congestion Window Reduced.
	FlagNS                    // FlagNS  - Nonce Sum flag (see RFC 3540).
)

const flagMask = 0x01ff

// HasAll checks if mask bits are all set in the receiver flags.
func (flags Flags) HasAll(mask Flags) bool { return flags&mask == mask }

// HasAny checks if one or more mask bits are set in receiver flags.
func (flags Flags) HasAny(mask Flags) bool { return flags&mask != 0 }

// Mask returns the flags with non-flag bits unset.
func (flags Flags) Mask() Flags { return flags & flagMask }

// String returns a human readable flag string, e.g. "[SYN,ACK]". Flags
// are printed in order from LSB (FIN) to MSB (NS).
func (flags Flags) String() string {
	switch flags {
	case 0:
		return "[]"
	case FlagSYN | FlagACK:
		return "[SYN,ACK]"
	case FlagFIN | FlagACK:
		return "[FIN,ACK]"
	case FlagPSH | FlagACK:
		return "[PSH,ACK]"
	case FlagACK:
		return "[ACK]"
	case FlagSYN:
		return "[SYN]"
	case FlagFIN:
		return "[FIN]"
	case FlagRST:
		return "[RST]"
	}
	buf := make([]byte, 0, 2+3*bits.OnesCount16(uint16(flags)))
	buf = append(buf, '[')
	buf = flags.AppendFormat(buf)
	buf = append(buf, ']')
	return string(buf)
}

// AppendFormat appends a human readable flag string to b and returns the
// extended buffer.
func (flags Flags) AppendFormat(b []byte) []byte {
	if flags == 0 {
		return b
	}
	const flaglen = 3
	const strflags = "FINSYNRSTPSHACKURGECECWRNS "
	var addcommas bool
	for flags != 0 {
		i := bits.TrailingZeros16(uint16(flags))
		if addcommas {
			b = append(b, ',')
		} else {
			addcommas = true
		}
		b = append(b, strflags[i*flaglen:i*flaglen+flaglen]...)
		flags &= ^(1 << i)
	}
	return b
}

// OptionKind names a TCP option's kind byte (RFC 793 §3.1 plus the IANA
// TCP option kind registry).
type OptionKind uint8

const (
	OptEnd                    OptionKind = iota // end of option list
	OptNop                                      // no-operation
	OptMaxSegmentSize                           // maximum segment size
	OptWindowScale                              // window scale
	OptSACKPermitted                            // SACK permitted
	OptSACK                                      // SACK
	OptEcho                                      // echo(obsolete)
	optEchoReply                                 // echo reply(obsolete)
	OptTimestamps                                // timestamps
	optPOCP                                      // partial order connection permitted(obsolete)
	optPOSP                                      // partial order service profile(obsolete)
	optCC                                        // CC(obsolete)
	optCCnew                                     // CC.new(obsolete)
	optCCecho                                    // CC.echo(obsolete)
	optACR                                       // alternate checksum request(obsolete)
	optACD                                       // alternate checksum data(obsolete)
	optSkeeter                                   // skeeter
	optBubba                                     // bubba
	OptTrailerChecksum                           // trailer checksum
	optMD5Signature                              // MD5 signature(obsolete)
	OptSCPSCapabilities                          // SCPS capabilities
	OptSNA                                        // selective negative acks
	OptRecordBoundaries                          // record boundaries
	OptCorruptionExperienced                      // corruption experienced
	OptSNAP                                        // SNAP
	OptUnassigned                                  // unassigned
	OptCompressionFilter                           // compression filter
	OptQuickStartResponse                          // quick-start response
	OptUserTimeout                                 // user timeout or unauthorized use
	OptAuthetication                               // Authentication TCP-AO
	OptMultipath                                   // multipath TCP
)

const (
	OptFastOpenCookie        OptionKind = 34  // fast open cookie
	OptEncryptionNegotiation OptionKind = 69  // encryption negotiation
	OptAccurateECN0          OptionKind = 172 // accurate ECN order 0
	OptAccurateECN1          OptionKind = 174 // accurate ECN order 1
)

var optionKindNames = map[OptionKind]string{
	OptEnd:                    "end of option list",
	OptNop:                    "no-operation",
	OptMaxSegmentSize:         "maximum segment size",
	OptWindowScale:            "window scale",
	OptSACKPermitted:          "SACK permitted",
	OptSACK:                   "SACK",
	OptEcho:                   "echo(obsolete)",
	optEchoReply:              "echo reply(obsolete)",
	OptTimestamps:             "timestamps",
	optPOCP:                   "partial order connection permitted(obsolete)",
	optPOSP:                   "partial order service profile(obsolete)",
	optCC:                     "CC(obsolete)",
	optCCnew:                  "CC.new(obsolete)",
	optCCecho:                 "CC.echo(obsolete)",
	optACR:                    "alternate checksum request(obsolete)",
	optACD:                    "alternate checksum data(obsolete)",
	optSkeeter:                "skeeter",
	optBubba:                  "bubba",
	OptTrailerChecksum:        "trailer checksum",
	optMD5Signature:           "MD5 signature(obsolete)",
	OptSCPSCapabilities:       "SCPS capabilities",
	OptSNA:                    "selective negative acks",
	OptRecordBoundaries:       "record boundaries",
	OptCorruptionExperienced:  "corruption experienced",
	OptSNAP:                   "SNAP",
	OptUnassigned:             "unassigned",
	OptCompressionFilter:      "compression filter",
	OptQuickStartResponse:     "quick-start response",
	OptUserTimeout:            "user timeout or unauthorized use",
	OptAuthetication:          "Authentication TCP-AO",
	OptMultipath:              "multipath TCP",
	OptFastOpenCookie:         "fast open cookie",
	OptEncryptionNegotiation:  "encryption negotiation",
	OptAccurateECN0:           "accurate ECN order 0",
	OptAccurateECN1:           "accurate ECN order 1",
}

func (kind OptionKind) String() string {
	if name, ok := optionKindNames[kind]; ok {
		return name
	}
	return fmt.Sprintf("OptionKind(%d)", uint8(kind))
}

// IsObsolete returns true if the option kind is considered obsolete by
// newer TCP specifications.
func (kind OptionKind) IsObsolete() bool {
	if kind.IsDefined() {
		return strings.HasSuffix(kind.String(), "(obsolete)")
	}
	return false
}

// IsDefined returns true if the option is a known unreserved option kind.
func (kind OptionKind) IsDefined() bool {
	return kind <= 30 || kind == 34 || kind == 69 || kind == 172 || kind == 174
}

// OptionParser walks a TCP options byte range, invoking fn with each
// option's kind and value. Options are exposed as raw byte ranges with no
// per-option semantic decoding, so ForEachOption's only job is finding
// where each option starts and ends.
type OptionParser struct {
	SkipSizeValidation bool
}

// ForEachOption walks opts, the TCP options byte range, calling fn once
// per option kind, stopping at the end-of-options kind or the end of
// the range, whichever comes first.
func (op *OptionParser) ForEachOption(opts []byte, fn func(OptionKind, []byte) error) error {
	off := 0
	for off < len(opts) && opts[off] != 0 {
		kind := OptionKind(opts[off])
		off++
		if kind == OptNop {
			continue
		}
		if len(opts[off:]) < 1 {
			return errShortOpts
		}
		size := int(opts[off])
		off++
		valLen := size - 2
		if valLen < 0 || len(opts[off:]) < valLen {
			return fmt.Errorf("option %q length %d exceeds buffer", kind.String(), size)
		}
		if !op.SkipSizeValidation {
			expectSize := -1
			switch kind {
			case OptTimestamps:
				expectSize = 8
			case OptMaxSegmentSize, OptUserTimeout:
				expectSize = 2
			case OptWindowScale:
				expectSize = 1
			case OptSACKPermitted:
				expectSize = 0
			}
			if expectSize != -1 && valLen != expectSize {
				return fmt.Errorf("%w: %q want %d got %d", errBadOptSize, kind.String(), expectSize, valLen)
			}
		}
		if err := fn(kind, opts[off:off+valLen]); err != nil {
			return err
		}
		off += valLen
	}
	return nil
}
