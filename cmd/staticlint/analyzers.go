package main

import (
	"go/ast"
	"go/types"
	"strconv"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// NoOsExitInMainAnalyzer запрещает прямой вызов os.Exit в функции main пакета main.
var NoOsExitInMainAnalyzer = &analysis.Analyzer{
	Name:     "noosexitinmain",
	Doc:      "reports direct calls to os.Exit in main.main of package main",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runNoOsExitInMain,
}

// NoMathRandAnalyzer запрещает math/rand: ключи и всё вокруг них берут случайность только из crypto/rand.
var NoMathRandAnalyzer = &analysis.Analyzer{
	Name: "nomathrand",
	Doc:  "reports imports of math/rand and math/rand/v2; key material must come from crypto/rand",
	Run:  runNoMathRand,
}

var forbiddenRand = map[string]bool{
	"math/rand":    true,
	"math/rand/v2": true,
}

func runNoOsExitInMain(pass *analysis.Pass) (any, error) {
	if pass.Pkg == nil || pass.Pkg.Name() != "main" {
		return nil, nil
	}
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		fn := n.(*ast.FuncDecl)
		if fn.Recv != nil || fn.Name.Name != "main" || fn.Body == nil {
			return
		}
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			// замыкания внутри main тоже считаются
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			if isPkgFunc(pass, call, "os", "Exit") {
				pass.Reportf(call.Pos(), "запрещён прямой вызов os.Exit в main.main; вынесите завершение в отдельную функцию")
			}
			return true
		})
	})
	return nil, nil
}

func isPkgFunc(pass *analysis.Pass, call *ast.CallExpr, pkgPath, name string) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	fun, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	return ok && fun.Pkg() != nil && fun.Pkg().Path() == pkgPath && fun.Name() == name
}

func runNoMathRand(pass *analysis.Pass) (any, error) {
	for _, f := range pass.Files {
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				continue
			}
			if forbiddenRand[path] {
				pass.Reportf(imp.Pos(), "%s is not a CSPRNG; use crypto/rand", path)
			}
		}
	}
	return nil, nil
}
