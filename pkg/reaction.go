package edep

import (
	"strconv"
	"strings"
)

const (
	ProcCC    = 10
	ProcNC    = 20
	ProcOther = 30
)

var processCodes = map[string]int{
	"QES": 1,
	"RES": 2,
	"DIS": 3,
	"COH": 4,
	"MEC": 5,
}

// ParseReaction decodes the GENIE reaction string stored in the vertex,
// e.g. "nu:14;tgt:1000180400;N:2112;proc:Weak[CC],QES;".
// The process code is 10 (CC), 20 (NC) or 30 plus the scattering code,
// 0 when it is not known. The nucleon is the PDG code of the struck nucleon.
func ParseReaction(reaction string) (proc int, nucleon int) {
	tokens := strings.Split(reaction, ";")
	procStr := ""
	if len(tokens) > 2 {
		for _, token := range tokens[2:] {
			if strings.Contains(token, "proc:") {
				procStr = strings.ReplaceAll(token, "proc:", "")
				procStr = strings.ReplaceAll(procStr, "Weak[", "")
				procStr = strings.ReplaceAll(procStr, "],", "")
			} else if strings.Contains(token, "N:") {
				n, err := strconv.Atoi(strings.ReplaceAll(token, "N:", ""))
				if err == nil {
					nucleon = n
				}
			}
		}
	}

	switch {
	case strings.HasPrefix(procStr, "CC"):
		proc = ProcCC
		procStr = strings.ReplaceAll(procStr, "CC", "")
	case strings.HasPrefix(procStr, "NC"):
		proc = ProcNC
		procStr = strings.ReplaceAll(procStr, "NC", "")
	default:
		proc = ProcOther
	}
	proc += processCodes[procStr]
	return proc, nucleon
}
