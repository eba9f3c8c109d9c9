// Package tree строит неизменяемое дерево логгеров и разрешает имя логгера
// в узел по самому длинному совпадающему префиксу из сегментов, разделённых точкой.
//
// Дерево строится целиком или не строится вовсе: любая ошибка проверки
// отклоняет всю конфигурацию. Для каждого узла при построении вычисляются
// порог (явный или унаследованный от ближайшего настроенного предка)
// и итоговый набор аппендеров с учётом additive.
package tree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Kargones/logroute/internal/appender"
	"github.com/Kargones/logroute/internal/level"
	"github.com/Kargones/logroute/internal/pkg/apperrors"
)

// Resolver разрешает имя аппендера. Реализуется *appender.Registry.
type Resolver interface {
	Resolve(name string) (*appender.Appender, error)
}

// RootSpec — настройки корневого логгера.
type RootSpec struct {
	// Level обязателен; nil даёт LOGGER.MISSING_ROOT_LEVEL.
	Level     *level.Level
	Appenders []string
}

// LoggerSpec — настройки именованного логгера.
type LoggerSpec struct {
	Name string
	// Level nil означает наследование от ближайшего настроенного предка.
	Level     *level.Level
	Appenders []string
	// Additive nil означает true.
	Additive *bool
}

// Node — узел дерева. Неизменяем после Build.
type Node struct {
	name     string
	level    level.Level
	explicit bool
	additive bool
	own      []*appender.Appender
	dispatch []*appender.Appender
	parent   *Node
}

// Name возвращает имя узла; у корня пустое имя.
func (n *Node) Name() string { return n.name }

// IsRoot сообщает, является ли узел корнем.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Level возвращает эффективный порог узла.
func (n *Node) Level() level.Level { return n.level }

// LevelExplicit сообщает, задан ли порог в конфигурации, а не унаследован.
func (n *Node) LevelExplicit() bool { return n.explicit }

// Additive возвращает флаг additive.
func (n *Node) Additive() bool { return n.additive }

// Parent возвращает ближайшего настроенного предка (nil для корня).
func (n *Node) Parent() *Node { return n.parent }

// Appenders возвращает собственные аппендеры узла.
func (n *Node) Appenders() []*appender.Appender { return n.own }

// Dispatch возвращает итоговый набор аппендеров без повторов:
// собственные, затем аппендеры предков, пока узлы на пути additive.
func (n *Node) Dispatch() []*appender.Appender { return n.dispatch }

// Enabled сообщает, проходит ли событие уровня lvl порог узла.
func (n *Node) Enabled(lvl level.Level) bool { return n.level.Enabled(lvl) }

// Tree — неизменяемое дерево логгеров.
type Tree struct {
	root  *Node
	nodes map[string]*Node
}

// Build строит дерево. Все ссылки на аппендеры проверяются через reg.
//
// Ошибки:
//   - LOGGER.MISSING_ROOT_LEVEL — у корня нет порога;
//   - APPENDER.UNDEFINED — ссылка на незарегистрированный аппендер;
//   - CONFIG.VALIDATION_FAILED — некорректное или повторяющееся имя логгера.
func Build(root RootSpec, loggers []LoggerSpec, reg Resolver) (*Tree, error) {
	if root.Level == nil {
		return nil, apperrors.Newf(apperrors.ErrMissingRootLevel, "не задан уровень корневого логгера")
	}
	rootOwn, err := resolveAll(reg, "root", root.Appenders)
	if err != nil {
		return nil, err
	}
	t := &Tree{
		root: &Node{
			level:    *root.Level,
			explicit: true,
			additive: true,
			own:      rootOwn,
		},
		nodes: make(map[string]*Node, len(loggers)),
	}
	t.root.dispatch = dedup(rootOwn, nil)

	specs := make(map[string]LoggerSpec, len(loggers))
	for _, spec := range loggers {
		if err := validateName(spec.Name); err != nil {
			return nil, err
		}
		if _, dup := specs[spec.Name]; dup {
			return nil, apperrors.Newf(apperrors.ErrConfigValidate, "логгер %q объявлен повторно", spec.Name)
		}
		specs[spec.Name] = spec
	}

	// Предки обрабатываются раньше потомков: у предка строго меньше сегментов.
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		di, dj := strings.Count(names[i], "."), strings.Count(names[j], ".")
		if di != dj {
			return di < dj
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		spec := specs[name]
		own, err := resolveAll(reg, fmt.Sprintf("%q", name), spec.Appenders)
		if err != nil {
			return nil, err
		}
		parent := t.ancestor(name)
		n := &Node{
			name:     name,
			level:    parent.level,
			additive: spec.Additive == nil || *spec.Additive,
			own:      own,
			parent:   parent,
		}
		if spec.Level != nil {
			n.level = *spec.Level
			n.explicit = true
		}
		if n.additive {
			n.dispatch = dedup(own, parent.dispatch)
		} else {
			n.dispatch = dedup(own, nil)
		}
		t.nodes[name] = n
	}
	return t, nil
}

// Root возвращает корневой узел.
func (t *Tree) Root() *Node { return t.root }

// Resolve возвращает узел для имени логгера: сам узел, если он настроен,
// иначе ближайшего настроенного предка, в конечном счёте корень.
// Сопоставление идёт по целым сегментам: "a.b" — предок "a.b.c", но не "a.bc".
func (t *Tree) Resolve(name string) *Node {
	if n, ok := t.nodes[name]; ok {
		return n
	}
	return t.ancestor(name)
}

// ancestor ищет ближайшего настроенного строгого предка имени.
func (t *Tree) ancestor(name string) *Node {
	for {
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			return t.root
		}
		name = name[:i]
		if n, ok := t.nodes[name]; ok {
			return n
		}
	}
}

// Loggers возвращает именованные узлы, отсортированные по имени.
func (t *Tree) Loggers() []*Node {
	out := make([]*Node, 0, len(t.nodes))
	for _, n := range t.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func resolveAll(reg Resolver, owner string, names []string) ([]*appender.Appender, error) {
	out := make([]*appender.Appender, 0, len(names))
	for _, name := range names {
		a, err := reg.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("логгер %s: %w", owner, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// dedup объединяет списки, сохраняя порядок первого появления.
func dedup(first, rest []*appender.Appender) []*appender.Appender {
	seen := make(map[*appender.Appender]struct{}, len(first)+len(rest))
	out := make([]*appender.Appender, 0, len(first)+len(rest))
	for _, list := range [][]*appender.Appender{first, rest} {
		for _, a := range list {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}

func validateName(name string) error {
	if name == "" {
		return apperrors.Newf(apperrors.ErrConfigValidate, "имя логгера не может быть пустым")
	}
	for _, seg := range strings.Split(name, ".") {
		if seg == "" {
			return apperrors.Newf(apperrors.ErrConfigValidate, "имя логгера %q содержит пустой сегмент", name)
		}
	}
	return nil
}
