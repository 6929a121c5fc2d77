package output

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	branchMid   = "├── "
	branchLast  = "└── "
	branchPipe  = "│   "
	branchBlank = "    "
)

// DescriptionColumn is the column generated-file descriptions align to.
const DescriptionColumn = 44

type treeNode struct {
	name        string
	description string
	dir         bool
	children    []*treeNode
}

func (n *treeNode) child(name string, dir bool) *treeNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	c := &treeNode{name: name, dir: dir}
	n.children = append(n.children, c)
	return c
}

// RenderFileTree renders the generated project as a tree rooted at root.
// files maps slash- or OS-separated relative paths to a short description;
// an empty description prints the path alone.
func RenderFileTree(root string, files map[string]string, styles *Styles) string {
	if len(files) == 0 {
		return ""
	}
	if styles == nil {
		styles = GetStyles()
	}

	top := &treeNode{name: root, dir: true}
	for path, desc := range files {
		parts := strings.Split(filepath.ToSlash(path), "/")
		cur := top
		for i, part := range parts {
			last := i == len(parts)-1
			cur = cur.child(part, !last)
			if last {
				cur.description = desc
			}
		}
	}
	sortNodes(top)

	var sb strings.Builder
	sb.WriteString(styles.Bold.Render(top.name + "/"))
	sb.WriteString("\n")
	for i, c := range top.children {
		writeNode(&sb, c, "", i == len(top.children)-1, styles)
	}
	return sb.String()
}

// sortNodes orders directories before files, then by name.
func sortNodes(n *treeNode) {
	sort.SliceStable(n.children, func(i, j int) bool {
		a, b := n.children[i], n.children[j]
		if a.dir != b.dir {
			return a.dir
		}
		return a.name < b.name
	})
	for _, c := range n.children {
		sortNodes(c)
	}
}

func writeNode(sb *strings.Builder, n *treeNode, prefix string, last bool, styles *Styles) {
	connector, nextPrefix := branchMid, prefix+branchPipe
	if last {
		connector, nextPrefix = branchLast, prefix+branchBlank
	}

	name := n.name
	if n.dir {
		name += "/"
	}
	line := prefix + connector + name
	if n.description != "" {
		// Box-drawing runes are multi-byte; pad by rune count.
		pad := DescriptionColumn - len([]rune(line))
		if pad < 2 {
			pad = 2
		}
		line += strings.Repeat(" ", pad) + styles.Muted.Render(n.description)
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	for i, c := range n.children {
		writeNode(sb, c, nextPrefix, i == len(n.children)-1, styles)
	}
}
