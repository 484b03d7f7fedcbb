package route

import "strings"

type nodeType uint8

const (
	static nodeType = iota // 静态节点
	root                   // 根节点
	param                  // 参数节点，如 :name
)

// Node 路由前缀树节点
type Node struct {
	path      string           // 当前路径片段
	indices   map[string]*Node // 静态子节点索引
	params    []*Node          // 参数子节点
	pattern   string           // 注册时的完整路由，非空表示可命中
	nType     nodeType
	paramName string
}

// NewTree 创建根节点
func NewTree() *Node {
	return &Node{
		indices: make(map[string]*Node),
		nType:   root,
	}
}

// Insert 插入路由，返回规范化后的路由模式
func (n *Node) Insert(path string) string {
	pattern := Clean(path)
	current := n
	for _, part := range splitPath(pattern) {
		current = current.child(part)
	}
	current.pattern = pattern
	return pattern
}

// child 查找或创建子节点
func (n *Node) child(part string) *Node {
	if strings.HasPrefix(part, ":") {
		name := strings.TrimPrefix(part, ":")
		for _, p := range n.params {
			if p.paramName == name {
				return p
			}
		}
		node := &Node{path: part, indices: make(map[string]*Node), nType: param, paramName: name}
		n.params = append(n.params, node)
		return node
	}
	if node, ok := n.indices[part]; ok {
		return node
	}
	node := &Node{path: part, indices: make(map[string]*Node), nType: static}
	n.indices[part] = node
	return node
}

// Find 匹配请求路径：静态节点优先，其次参数节点
func (n *Node) Find(path string) (string, map[string]string, bool) {
	if n == nil {
		return "", nil, false
	}
	params := make(map[string]string)
	node := n.find(splitPath(Clean(path)), params)
	if node == nil {
		return "", nil, false
	}
	return node.pattern, params, true
}

func (n *Node) find(parts []string, params map[string]string) *Node {
	if len(parts) == 0 {
		if n.pattern == "" {
			return nil
		}
		return n
	}
	part := parts[0]
	if next, ok := n.indices[part]; ok {
		if found := next.find(parts[1:], params); found != nil {
			return found
		}
	}
	for _, p := range n.params {
		if found := p.find(parts[1:], params); found != nil {
			params[p.paramName] = part
			return found
		}
	}
	return nil
}

// Clean 规范化路径：以/开头，去掉末尾的/
func Clean(path string) string {
	if path == "" {
		return "/"
	}
	if path[0] != '/' {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}

// splitPath 分割路径
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
