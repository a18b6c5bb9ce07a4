// Package twiml builds the voice-response markup documents the telephony
// provider executes on an active call: play a prompt, gather speech, speak a
// phrase, hang up.
package twiml

import (
	"encoding/xml"
)

const Header = `<?xml version="1.0" encoding="UTF-8"?>`

type VoiceResponse struct {
	XMLName xml.Name      `xml:"Response"`
	Verbs   []interface{} `xml:",any"`
}

type Say struct {
	XMLName xml.Name `xml:"Say"`
	Voice   string   `xml:"voice,attr,omitempty"`
	Text    string   `xml:",chardata"`
}

type Play struct {
	XMLName xml.Name `xml:"Play"`
	URL     string   `xml:",chardata"`
}

type Gather struct {
	XMLName       xml.Name `xml:"Gather"`
	Input         string   `xml:"input,attr,omitempty"`
	Timeout       int      `xml:"timeout,attr,omitempty"`
	SpeechTimeout string   `xml:"speechTimeout,attr,omitempty"`
	Action        string   `xml:"action,attr,omitempty"`
	Method        string   `xml:"method,attr,omitempty"`
	Verbs         []interface{}
}

type Hangup struct {
	XMLName xml.Name `xml:"Hangup"`
}

func New() *VoiceResponse {
	return &VoiceResponse{}
}

func (r *VoiceResponse) Say(text, voice string) *VoiceResponse {
	r.Verbs = append(r.Verbs, Say{Text: text, Voice: voice})
	return r
}

func (r *VoiceResponse) Play(url string) *VoiceResponse {
	r.Verbs = append(r.Verbs, Play{URL: url})
	return r
}

func (r *VoiceResponse) Gather(g Gather) *VoiceResponse {
	r.Verbs = append(r.Verbs, g)
	return r
}

func (r *VoiceResponse) Hangup() *VoiceResponse {
	r.Verbs = append(r.Verbs, Hangup{})
	return r
}

// Render serializes the document with the XML declaration the provider expects.
func (r *VoiceResponse) Render() (string, error) {
	body, err := xml.Marshal(r)
	if err != nil {
		return "", err
	}

	return Header + string(body), nil
}
