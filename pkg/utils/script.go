package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ScriptEvent 在 Tick 开始的 Hold 个 tick 内按住 Key
type ScriptEvent struct {
	Key  Key
	Tick uint64
	Hold uint64
}

// Script 预先录好的输入序列，用于无界面模拟
type Script []ScriptEvent

// ParseScript 解析形如 "left@30,right@60+12,reset@100" 的输入脚本
//
// 每一项是 <key>@<tick>[+<hold>]，key 为 left / right / reset，hold 默认 1。
// 空字符串返回空脚本。
func ParseScript(s string) (Script, error) {
	var script Script
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		name, rest, ok := strings.Cut(item, "@")
		if !ok {
			return nil, fmt.Errorf("invalid script item %q: missing '@'", item)
		}
		key, err := parseKey(name)
		if err != nil {
			return nil, fmt.Errorf("invalid script item %q: %w", item, err)
		}

		tickStr, holdStr, hasHold := strings.Cut(rest, "+")
		tick, err := strconv.ParseUint(tickStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid script item %q: bad tick: %w", item, err)
		}
		hold := uint64(1)
		if hasHold {
			hold, err = strconv.ParseUint(holdStr, 10, 64)
			if err != nil || hold == 0 {
				return nil, fmt.Errorf("invalid script item %q: hold must be a positive integer", item)
			}
		}

		script = append(script, ScriptEvent{Key: key, Tick: tick, Hold: hold})
	}
	return script, nil
}

func parseKey(name string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return KeyLeft, nil
	case "right":
		return KeyRight, nil
	case "reset":
		return KeyReset, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// IntentAt 返回第 tick 个 tick（从 0 开始）的输入
func (s Script) IntentAt(tick uint64) Intent {
	var in Intent
	for _, ev := range s {
		// 用差值比较，Hold 很大时 Tick+Hold 会溢出
		if tick < ev.Tick || tick-ev.Tick >= ev.Hold {
			continue
		}
		switch ev.Key {
		case KeyLeft:
			in.Left = true
		case KeyRight:
			in.Right = true
		case KeyReset:
			in.Reset = true
		}
	}
	return in
}
