// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package archive implements the tagged File/Directory tree that the
// compression core treats as an opaque byte stream: Marshal/Unmarshal
// turn a Node into the bytes the core actually compresses, and Read/Write
// materialise a Node from (or onto) the local filesystem.
package archive

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// Node is one entry in an archive tree: either a file (IsDir == false,
// Content holds its bytes, Children is empty) or a directory (IsDir ==
// true, Children holds its entries, Content is empty). File permissions,
// timestamps, and symlinks are not represented; an empty directory is a
// directory node with no children.
type Node struct {
	Name     string
	IsDir    bool
	Content  []byte
	Children []Node
}

// Marshal serialises a Node tree into the flat byte stream the compression
// core operates on.
func Marshal(root Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(root); err != nil {
		return nil, fmt.Errorf("archive: marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal is the exact inverse of Marshal.
func Unmarshal(data []byte) (Node, error) {
	var root Node
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return Node{}, fmt.Errorf("archive: unmarshal: %w", err)
	}
	return root, nil
}

// Read walks path on disk and builds the corresponding Node tree.
func Read(path string) (Node, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Node{}, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return Node{}, err
	}
	name := filepath.Base(absPath)

	if !info.IsDir() {
		content, err := os.ReadFile(absPath)
		if err != nil {
			return Node{}, err
		}
		return Node{Name: name, Content: content}, nil
	}

	entries, err := os.ReadDir(absPath)
	if err != nil {
		return Node{}, err
	}
	children := make([]Node, 0, len(entries))
	for _, e := range entries {
		child, err := Read(filepath.Join(absPath, e.Name()))
		if err != nil {
			return Node{}, err
		}
		children = append(children, child)
	}
	return Node{Name: name, IsDir: true, Children: children}, nil
}

// Write materialises root under dir, skipping any entry whose path already
// exists rather than overwriting it.
func Write(root Node, dir string) error {
	target := filepath.Join(dir, root.Name)
	if _, err := os.Stat(target); err == nil {
		return nil
	}

	if !root.IsDir {
		return os.WriteFile(target, root.Content, 0o644)
	}
	if err := os.Mkdir(target, 0o755); err != nil {
		return err
	}
	for _, child := range root.Children {
		if err := Write(child, target); err != nil {
			return err
		}
	}
	return nil
}
