//go:build !gui

package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Pause   key.Binding
	Resume  key.Binding
	Toggle  key.Binding
	Save    key.Binding
	Sidebar key.Binding
	Forward key.Binding
	Back    key.Binding
	Top     key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Help    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Resume: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resume"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/play"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save bookmark"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "sidebar"),
		),
		Forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "forward"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "back"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Faster: key.NewBinding(
			key.WithKeys("up", "+", "="),
			key.WithHelp("↑/+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("down", "-"),
			key.WithHelp("↓/-", "slower"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Forward, k.Back, k.Save, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Resume, k.Toggle},
		{k.Forward, k.Back, k.Top},
		{k.Faster, k.Slower},
		{k.Save, k.Sidebar, k.Help, k.Quit},
	}
}
