package main

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/avolkov/roomwire/internal/core"
)

// readInput turns stdin lines into session commands. Plain text sends in
// the current mode; slash commands drive rooms, groups, and identity. A nil
// command with ok=true means quit.
func readInput(ctx context.Context, quit context.CancelFunc, cmds chan<- *core.Command, sink *termSink) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd, ok := parseLine(scanner.Text(), sink)
		if !ok {
			continue
		}
		if cmd == nil {
			quit()
			return
		}
		select {
		case cmds <- cmd:
		case <-ctx.Done():
			return
		}
	}
	quit()
}

func parseLine(line string, sink *termSink) (*core.Command, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, false
	}
	if !strings.HasPrefix(trimmed, "/") {
		// Forward verbatim; the session trims and drops empty sends itself.
		return &core.Command{Kind: core.CommandSendText, Text: line}, true
	}

	verb, arg, _ := strings.Cut(trimmed[1:], " ")
	arg = strings.TrimSpace(arg)

	switch verb {
	case "quit", "exit":
		return nil, true
	case "room":
		return &core.Command{Kind: core.CommandSwitchRoom, Room: arg}, true
	case "global":
		return &core.Command{Kind: core.CommandOpenGlobal}, true
	case "pm":
		return &core.Command{Kind: core.CommandOpenPrivate, Target: arg}, true
	case "group":
		return &core.Command{Kind: core.CommandOpenGroup, Room: arg}, true
	case "create":
		return &core.Command{Kind: core.CommandCreateGroup, Room: arg}, true
	case "join":
		return &core.Command{Kind: core.CommandJoinGroup, Room: arg}, true
	case "leave":
		return &core.Command{Kind: core.CommandLeaveGroup, Room: arg}, true
	case "delete-group":
		return &core.Command{Kind: core.CommandDeleteGroup, Room: arg}, true
	case "del":
		return &core.Command{Kind: core.CommandDeleteMessage, MessageID: arg}, true
	case "anon":
		return &core.Command{Kind: core.CommandToggleAnonymous}, true
	case "who":
		sink.printUsers()
		return nil, false
	case "groups":
		sink.printGroups()
		return nil, false
	case "help":
		sink.printHelp()
		return nil, false
	default:
		sink.Prompt("unknown command /" + verb + " (try /help)")
		return nil, false
	}
}
