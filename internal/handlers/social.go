package handlers

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/RednibCoding/mudden-sub004/internal/protocol"
)

// Message templates, one self/other pair per channel. The self variant
// goes to the speaker, the other variant to every other recipient.
var socialTemplates = map[string]string{
	"say_self":    `You say, "{{ .Message }}"`,
	"say_other":   `{{ .Speaker }} says, "{{ .Message }}"`,
	"tell_self":   `You tell {{ .Target }}, "{{ .Message }}"`,
	"tell_other":  `{{ .Speaker }} tells you, "{{ .Message }}"`,
	"emote_self":  `You {{ .Message }}`,
	"emote_other": `{{ .Speaker }} {{ .Message }}`,
}

type socialData struct {
	Speaker string
	Target  string
	Message string
}

type socialRenderer struct {
	tmpls map[string]*template.Template
}

func newSocialRenderer() (*socialRenderer, error) {
	r := &socialRenderer{tmpls: make(map[string]*template.Template)}
	funcs := sprig.TxtFuncMap()

	for name, text := range socialTemplates {
		tmpl, err := template.New(name).Funcs(funcs).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.tmpls[name] = tmpl
	}
	return r, nil
}

func (r *socialRenderer) render(name string, data socialData) (string, error) {
	tmpl, ok := r.tmpls[name]
	if !ok {
		return "", fmt.Errorf("unknown template %s", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// handleSay sends one social_message per room occupant: a self variant
// to the speaker, an other variant to everyone else in the room, and
// nothing to anyone outside it.
func (h *Handlers) handleSay(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
	payload, ok := cmd.Payload.(*protocol.SayPayload)
	if !ok {
		return nil, fmt.Errorf("unexpected payload type %T", cmd.Payload)
	}

	return h.roomMessage(cmd, "say", payload.Message)
}

// handleEmote works like say with a different rendering.
func (h *Handlers) handleEmote(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
	payload, ok := cmd.Payload.(*protocol.EmotePayload)
	if !ok {
		return nil, fmt.Errorf("unexpected payload type %T", cmd.Payload)
	}

	return h.roomMessage(cmd, "emote", payload.Action)
}

func (h *Handlers) roomMessage(cmd *protocol.Command, channel, message string) ([]*protocol.Update, error) {
	occupants, reason := h.world.Occupants(cmd.PlayerId)
	if reason != protocol.ReasonNone {
		return fail(cmd, reason, ""), nil
	}

	speaker := h.world.GetPlayer(cmd.PlayerId)
	if speaker == nil {
		return fail(cmd, protocol.ReasonInternal, ""), nil
	}

	var updates []*protocol.Update
	for _, occ := range occupants {
		variant := channel + "_other"
		if occ.PlayerId == cmd.PlayerId {
			variant = channel + "_self"
		}
		text, err := h.social.render(variant, socialData{
			Speaker: speaker.Name,
			Message: message,
		})
		if err != nil {
			return nil, err
		}
		updates = append(updates, protocol.NewUpdate(protocol.UpdateSocialMessage, &protocol.SocialMessageData{
			Channel: channel,
			Speaker: speaker.Name,
			Text:    text,
		}, occ.PlayerId))
	}

	return updates, nil
}

// handleTell sends a private message to a named online player. An
// unknown target is the speaker's problem alone.
func (h *Handlers) handleTell(ctx context.Context, cmd *protocol.Command) ([]*protocol.Update, error) {
	payload, ok := cmd.Payload.(*protocol.TellPayload)
	if !ok {
		return nil, fmt.Errorf("unexpected payload type %T", cmd.Payload)
	}

	speaker := h.world.GetPlayer(cmd.PlayerId)
	if speaker == nil {
		return fail(cmd, protocol.ReasonInternal, ""), nil
	}

	target, found := h.world.FindPlayerByName(payload.Target)
	if !found {
		return fail(cmd, protocol.ReasonTargetNotFound, payload.Target), nil
	}

	selfText, err := h.social.render("tell_self", socialData{
		Speaker: speaker.Name,
		Target:  target.Name,
		Message: payload.Message,
	})
	if err != nil {
		return nil, err
	}

	updates := []*protocol.Update{
		protocol.NewUpdate(protocol.UpdateSocialMessage, &protocol.SocialMessageData{
			Channel: "tell",
			Speaker: speaker.Name,
			Text:    selfText,
		}, cmd.PlayerId),
	}

	// Telling yourself produces just the confirmation.
	if target.PlayerId != cmd.PlayerId {
		otherText, err := h.social.render("tell_other", socialData{
			Speaker: speaker.Name,
			Message: payload.Message,
		})
		if err != nil {
			return nil, err
		}
		updates = append(updates, protocol.NewUpdate(protocol.UpdateSocialMessage, &protocol.SocialMessageData{
			Channel: "tell",
			Speaker: speaker.Name,
			Text:    otherText,
		}, target.PlayerId))
	}

	return updates, nil
}
