package main

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/catena/node"
)

func renderBanner() {
	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("C", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("atena", pterm.FgDarkGray.ToStyle()),
	).Render()
}

// printStartupSummary shows the node's vitals in a box before the first log
// line, so operators can copy the identifier and check the peer list at a
// glance.
func printStartupSummary(n *node.Node, listenAddr string, difficulty int) {
	peers := n.Peers()
	peerInfo := "none"
	if len(peers) > 0 {
		peerInfo = strings.Join(peers, ", ")
	}
	pbox := pterm.DefaultBox.WithTitle("node").WithTitleTopLeft().WithLeftPadding(4).WithRightPadding(4)
	pbox.Printfln("Identifier: %s\nListening:  %s\nDifficulty: %d\nPeers:      %s",
		n.Identifier(), listenAddr, difficulty, peerInfo)

	// Print a blank line for better readability
	pterm.Println()
}
