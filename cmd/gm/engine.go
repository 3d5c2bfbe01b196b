package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/skaldic/campaign-engine/internal/export"
	"github.com/skaldic/campaign-engine/internal/storage"
	"github.com/skaldic/campaign-engine/pkg/civilwar"
	"github.com/skaldic/campaign-engine/pkg/companion"
	"github.com/skaldic/campaign-engine/pkg/resolver"
	"github.com/skaldic/campaign-engine/pkg/state"
	"github.com/skaldic/campaign-engine/pkg/trigger"
)

// session is the in-process engine behind the console: one campaign, one
// store, mutated only from the UI goroutine.
type session struct {
	store  storage.Storage
	logger *slog.Logger
	id     uuid.UUID
	cs     *state.CampaignState
}

func (s *session) save() error {
	return s.store.SaveCampaign(context.Background(), s.id, s.cs)
}

const helpText = `Commands:
  go <location>            travel; triggers fire for the region
  time <night|day|hour N>  set the world clock
  schism <topic> <choice>  resolve a schism scene (ignore|mediate|take_sides)
  breakpoint <choice>      settle the schism (reconcile|reform|tradition|civil_war)
  underforge <choice>      answer the blood offer (embrace|refuse)
  confession <choice>      answer Kodlak (honest|deceptive)
  cure <choice>            the ritual (cure|sacrifice)
  intro <faction>          mark a faction intro arc complete
  battle <start [side]|advance>
  recruit|dismiss <npc>    manage the active party
  loyalty <npc> <n> [why]  adjust a companion's loyalty
  hit <npc> <text>         apply an assault consequence to a defender
  savegate <npc> <success|failure>
  tick <clock> <n>         advance or rewind a clock
  trust <npc> <n>          adjust NPC trust
  export <path>            write a zip archive (state + journal)
  save                     persist now (every command also autosaves)`

// runCommand executes one console command against the campaign. Events are
// journaled and the document saved before returning.
func (s *session) runCommand(input string) ([]string, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var (
		events   []string
		location string
		err      error
	)

	switch cmd {
	case "help":
		return strings.Split(helpText, "\n"), nil

	case "go":
		if len(args) == 0 {
			return nil, fmt.Errorf("go where?")
		}
		location = strings.ToLower(strings.Join(args, "_"))
		events = trigger.Dispatch(location, s.cs)
		if len(events) == 0 {
			events = []string{fmt.Sprintf("Nothing stirs in %s.", location)}
		}

	case "time":
		if len(args) == 0 {
			return nil, fmt.Errorf("time what? (night, day, evening, or hour N)")
		}
		w := s.ensureWorld()
		if args[0] == "hour" && len(args) > 1 {
			h, convErr := strconv.Atoi(args[1])
			if convErr != nil || h < 0 || h > 23 {
				return nil, fmt.Errorf("hour must be 0-23")
			}
			w.Hour = &h
			events = []string{fmt.Sprintf("The hour is now %d.", h)}
		} else {
			w.TimeOfDay = args[0]
			w.Hour = nil
			events = []string{"It is now " + args[0] + "."}
		}

	case "schism":
		if len(args) < 2 {
			return nil, fmt.Errorf("schism <topic> <choice>")
		}
		events = resolver.ResolveSchismScene(s.cs, args[0], args[1])

	case "breakpoint":
		if len(args) < 1 {
			return nil, fmt.Errorf("breakpoint <choice>")
		}
		events = resolver.ResolveSchismBreakpoint(s.cs, args[0])

	case "underforge":
		if len(args) < 1 {
			return nil, fmt.Errorf("underforge <choice>")
		}
		events = resolver.ResolveUnderforgeOffer(s.cs, args[0])

	case "confession":
		if len(args) < 1 {
			return nil, fmt.Errorf("confession <choice>")
		}
		events = resolver.ResolveKodlakConfession(s.cs, args[0])

	case "cure":
		if len(args) < 1 {
			return nil, fmt.Errorf("cure <choice>")
		}
		events = resolver.ResolveCureRitual(s.cs, args[0])

	case "intro":
		if len(args) < 1 {
			return nil, fmt.Errorf("intro <faction>")
		}
		civilwar.MarkFactionIntroComplete(s.cs, args[0])
		events = []string{args[0] + " intro arc marked complete."}

	case "battle":
		events, err = s.battleCommand(args)
		if err != nil {
			return nil, err
		}

	case "recruit":
		if len(args) < 1 {
			return nil, fmt.Errorf("recruit <npc>")
		}
		if err := companion.Recruit(s.cs, args[0]); err != nil {
			return nil, err
		}
		events = []string{args[0] + " joins the party."}

	case "dismiss":
		if len(args) < 1 {
			return nil, fmt.Errorf("dismiss <npc>")
		}
		if err := companion.Dismiss(s.cs, args[0]); err != nil {
			return nil, err
		}
		events = []string{args[0] + " heads back to the hall."}

	case "loyalty":
		if len(args) < 2 {
			return nil, fmt.Errorf("loyalty <npc> <delta> [reason]")
		}
		delta, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return nil, fmt.Errorf("loyalty delta must be a number")
		}
		reason := strings.Join(args[2:], " ")
		v, err := companion.UpdateLoyalty(s.cs, args[0], delta, reason)
		if err != nil {
			return nil, err
		}
		events = []string{fmt.Sprintf("%s loyalty is now %d.", args[0], v)}

	case "hit":
		if len(args) < 2 {
			return nil, fmt.Errorf("hit <npc> <consequence text>")
		}
		events = companion.ApplyConsequence(s.cs, args[0], strings.Join(args[1:], " "))

	case "savegate":
		if len(args) < 2 {
			return nil, fmt.Errorf("savegate <npc> <success|failure>")
		}
		events = companion.AttemptSaveGate(s.cs, args[0], args[1])

	case "tick":
		if len(args) < 2 {
			return nil, fmt.Errorf("tick <clock> <delta>")
		}
		delta, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return nil, fmt.Errorf("tick delta must be a number")
		}
		progress := s.cs.TickClock(args[0], delta)
		events = []string{fmt.Sprintf("Clock %s stands at %d.", args[0], progress)}

	case "trust":
		if len(args) < 2 {
			return nil, fmt.Errorf("trust <npc> <delta>")
		}
		delta, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return nil, fmt.Errorf("trust delta must be a number")
		}
		v := s.cs.AdjustTrust(args[0], delta)
		events = []string{fmt.Sprintf("%s trust is now %d.", args[0], v)}

	case "export":
		if len(args) < 1 {
			return nil, fmt.Errorf("export <path>")
		}
		if err := s.exportArchive(args[0]); err != nil {
			return nil, err
		}
		events = []string{"Archive written to " + args[0] + "."}

	case "save":
		if err := s.save(); err != nil {
			return nil, err
		}
		return []string{"Saved."}, nil

	default:
		return nil, fmt.Errorf("unknown command %q (try help)", cmd)
	}

	s.cs.AppendSession(location, events)
	if err := s.save(); err != nil {
		s.logger.Error("Autosave failed", "error", err)
		return events, err
	}
	return events, nil
}

func (s *session) battleCommand(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("battle <start [side]|advance>")
	}
	switch args[0] {
	case "start":
		alliance := ""
		if len(args) > 1 {
			alliance = args[1]
		}
		if err := civilwar.StartBattleOfWhiterun(s.cs, alliance); err != nil {
			return nil, err
		}
		return []string{"Horns over the tundra. The Battle of Whiterun begins."}, nil
	case "advance":
		events := civilwar.AdvanceBattleStage(s.cs)
		if len(events) == 0 {
			return nil, fmt.Errorf("no battle in progress")
		}
		return events, nil
	default:
		return nil, fmt.Errorf("battle <start [side]|advance>")
	}
}

func (s *session) ensureWorld() *state.WorldState {
	if s.cs.World == nil {
		s.cs.World = &state.WorldState{}
	}
	return s.cs.World
}

func (s *session) exportArchive(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	if err := export.Archive(f, s.cs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
