package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/ritual/brain"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type validator interface {
	Validate() error
}

// loadValid loads and validates a spec, naming the file in any error.
func loadValid[T validator](filename string) (T, error) {
	spec, err := LoadSpec[T](filename)
	if err != nil {
		return spec, err
	}
	if err := spec.Validate(); err != nil {
		return spec, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

type SpiderSpec struct {
	Name          string            `yaml:"name"`
	Count         int               `yaml:"count"`
	Seed          int64             `yaml:"seed"`
	Radius        float64           `yaml:"radius"`
	Brain         BrainSpec         `yaml:"brain"`
	Agent         NavAgentSpec      `yaml:"agent"`
	AttackTrigger AttackTriggerSpec `yaml:"attack_trigger"`
	Animation     AnimationSpec     `yaml:"animation"`
	Color         *YAMLColor        `yaml:"color"`
}

type BrainSpec struct {
	DetectionRange        float64 `yaml:"detection_range"`
	AttackRange           float64 `yaml:"attack_range"`
	BaseSpeed             float64 `yaml:"base_speed"`
	PatrolSpeedMultiplier float64 `yaml:"patrol_speed_multiplier"`
	ChaseSpeedMultiplier  float64 `yaml:"chase_speed_multiplier"`
	PatrolRadius          float64 `yaml:"patrol_radius"`
	ArriveDistance        float64 `yaml:"arrive_distance"`
	NavSampleRadius       float64 `yaml:"nav_sample_radius"`
	FlankChance           float64 `yaml:"flank_chance"`
	ListenChance          float64 `yaml:"listen_chance"`
	AmbientSenseChance    float64 `yaml:"ambient_sense_chance"`
	PauseChance           float64 `yaml:"pause_chance"`
	FlankCooldown         float64 `yaml:"flank_cooldown"`
}

type NavAgentSpec struct {
	Acceleration     float64 `yaml:"acceleration"`
	AngularSpeed     float64 `yaml:"angular_speed"`
	StoppingDistance float64 `yaml:"stopping_distance"`
}

type AttackTriggerSpec struct {
	Radius float64 `yaml:"radius"`
}

type AnimationSpec struct {
	WalkFPS float64 `yaml:"walk_fps"`
}

func LoadSpiderSpec() (SpiderSpec, error) {
	return loadValid[SpiderSpec]("spider.yaml")
}

// BrainConfig converts the prefab into a behavior config. Zero fields fall
// back to the defaults; seed is the spider's own seed.
func (s SpiderSpec) BrainConfig(seed int64) brain.Config {
	cfg := brain.DefaultConfig()
	b := s.Brain
	set := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	set(&cfg.DetectionRange, b.DetectionRange)
	set(&cfg.AttackRange, b.AttackRange)
	set(&cfg.BaseSpeed, b.BaseSpeed)
	set(&cfg.PatrolSpeedMultiplier, b.PatrolSpeedMultiplier)
	set(&cfg.ChaseSpeedMultiplier, b.ChaseSpeedMultiplier)
	set(&cfg.PatrolRadius, b.PatrolRadius)
	set(&cfg.ArriveDistance, b.ArriveDistance)
	set(&cfg.NavSampleRadius, b.NavSampleRadius)
	set(&cfg.FlankCooldown, b.FlankCooldown)
	// Chances may legitimately be zero, so they are taken as written.
	cfg.FlankChance = b.FlankChance
	cfg.ListenChance = b.ListenChance
	cfg.AmbientSenseChance = b.AmbientSenseChance
	cfg.PauseChance = b.PauseChance
	cfg.Seed = seed
	return cfg
}

func (s SpiderSpec) Validate() error {
	if s.Count < 0 {
		return fmt.Errorf("%w: spider count %d is negative", ErrInvalidSpec, s.Count)
	}
	if !(s.Radius > 0) {
		return fmt.Errorf("%w: spider radius must be positive", ErrInvalidSpec)
	}
	if s.Agent.Acceleration < 0 || s.Agent.AngularSpeed < 0 || s.Agent.StoppingDistance < 0 {
		return fmt.Errorf("%w: spider agent values must not be negative", ErrInvalidSpec)
	}
	if !(s.AttackTrigger.Radius > 0) {
		return fmt.Errorf("%w: attack trigger radius must be positive", ErrInvalidSpec)
	}
	cfg := s.BrainConfig(s.Seed)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	// An attacking spider holds still, so a smaller trigger could leave the
	// player in attack range but out of reach forever.
	if s.AttackTrigger.Radius < cfg.AttackRange {
		return fmt.Errorf("%w: attack trigger radius %v is below attack range %v", ErrInvalidSpec, s.AttackTrigger.Radius, cfg.AttackRange)
	}
	return nil
}

type PlayerSpec struct {
	Name           string     `yaml:"name"`
	Radius         float64    `yaml:"radius"`
	WalkSpeed      float64    `yaml:"walk_speed"`
	SprintSpeed    float64    `yaml:"sprint_speed"`
	SprintDuration float64    `yaml:"sprint_duration"`
	SprintCooldown float64    `yaml:"sprint_cooldown"`
	Color          *YAMLColor `yaml:"color"`
}

func LoadPlayerSpec() (PlayerSpec, error) {
	return loadValid[PlayerSpec]("player.yaml")
}

func (s PlayerSpec) Validate() error {
	switch {
	case !(s.Radius > 0):
		return fmt.Errorf("%w: player radius must be positive", ErrInvalidSpec)
	case !(s.WalkSpeed > 0):
		return fmt.Errorf("%w: walk speed must be positive", ErrInvalidSpec)
	case s.SprintSpeed < s.WalkSpeed:
		return fmt.Errorf("%w: sprint speed %v is below walk speed %v", ErrInvalidSpec, s.SprintSpeed, s.WalkSpeed)
	case s.SprintDuration < 0 || s.SprintCooldown < 0:
		return fmt.Errorf("%w: sprint timings must not be negative", ErrInvalidSpec)
	}
	return nil
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// RectSpec is an axis-aligned box given by its top-left corner.
type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ArenaSpec struct {
	Name         string      `yaml:"name"`
	Width        float64     `yaml:"width"`
	Height       float64     `yaml:"height"`
	CellSize     float64     `yaml:"cell_size"`
	WallBorder   float64     `yaml:"wall_border"`
	Walls        []RectSpec  `yaml:"walls"`
	PlayerSpawn  PointSpec   `yaml:"player_spawn"`
	SpiderSpawns []PointSpec `yaml:"spider_spawns"`
	// Route is the loop the headless simulation walks the player along.
	Route      []PointSpec `yaml:"route"`
	FloorColor *YAMLColor  `yaml:"floor_color"`
	WallColor  *YAMLColor  `yaml:"wall_color"`
}

func LoadArenaSpec() (ArenaSpec, error) {
	return loadValid[ArenaSpec]("arena.yaml")
}

func (s ArenaSpec) Validate() error {
	if !(s.Width > 0) || !(s.Height > 0) {
		return fmt.Errorf("%w: arena size %vx%v", ErrInvalidSpec, s.Width, s.Height)
	}
	if !(s.CellSize > 0) {
		return fmt.Errorf("%w: cell size must be positive", ErrInvalidSpec)
	}
	if len(s.SpiderSpawns) == 0 {
		return fmt.Errorf("%w: arena has no spider spawns", ErrInvalidSpec)
	}
	for i, wall := range s.Walls {
		if !(wall.Width > 0) || !(wall.Height > 0) {
			return fmt.Errorf("%w: wall %d has empty size", ErrInvalidSpec, i)
		}
	}
	inside := func(p PointSpec) bool {
		return p.X > 0 && p.Y > 0 && p.X < s.Width && p.Y < s.Height
	}
	if !inside(s.PlayerSpawn) {
		return fmt.Errorf("%w: player spawn %v outside arena", ErrInvalidSpec, s.PlayerSpawn)
	}
	for i, p := range s.SpiderSpawns {
		if !inside(p) {
			return fmt.Errorf("%w: spider spawn %d %v outside arena", ErrInvalidSpec, i, p)
		}
	}
	return nil
}

type DeathSpec struct {
	VideoDelay     float64 `yaml:"video_delay"`
	Duration       float64 `yaml:"duration"`
	FadeSpeed      float64 `yaml:"fade_speed"`
	ShakeDuration  float64 `yaml:"shake_duration"`
	ShakeMagnitude float64 `yaml:"shake_magnitude"`
}

func LoadDeathSpec() (DeathSpec, error) {
	return loadValid[DeathSpec]("death.yaml")
}

func (s DeathSpec) Validate() error {
	if s.VideoDelay < 0 || s.FadeSpeed < 0 || s.ShakeDuration < 0 || s.ShakeMagnitude < 0 {
		return fmt.Errorf("%w: death timings must not be negative", ErrInvalidSpec)
	}
	if !(s.Duration > 0) {
		return fmt.Errorf("%w: death duration must be positive", ErrInvalidSpec)
	}
	if s.VideoDelay > s.Duration {
		return fmt.Errorf("%w: video delay %v exceeds death duration %v", ErrInvalidSpec, s.VideoDelay, s.Duration)
	}
	return nil
}

// YAMLColor decodes "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.Color
}

// Or returns c's color, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
