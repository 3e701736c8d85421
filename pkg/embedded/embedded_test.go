package embedded

import (
	"io/fs"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/battle.yaml":    &fstest.MapFile{Data: []byte("boardWidth: 15\n")},
		"data/shapes/dot.png": &fstest.MapFile{Data: []byte{0x89, 'P', 'N', 'G'}},
		"assets/ignored.txt":  &fstest.MapFile{Data: []byte("x")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	// 重置状态以避免影响其他测试
	initialized = false
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	initialized = false

	_, err := ReadFile("data/battle.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	data, err := ReadFile("./data/battle.yaml")
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if string(data) != "boardWidth: 15\n" {
		t.Errorf("Unexpected content: %q", data)
	}

	if _, err := ReadFile("assets/ignored.txt"); err == nil {
		t.Error("Expected error for path outside data/")
	}
}

func TestExists(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	if !Exists("data/shapes/dot.png") {
		t.Error("Expected data/shapes/dot.png to exist")
	}
	if Exists("data/missing.yaml") {
		t.Error("Expected data/missing.yaml not to exist")
	}
}

func TestDataFS(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	sub, err := DataFS()
	if err != nil {
		t.Fatalf("DataFS() failed: %v", err)
	}
	if _, err := fs.Stat(sub, "battle.yaml"); err != nil {
		t.Errorf("Expected battle.yaml at the root of the data FS: %v", err)
	}
	if _, err := fs.Stat(sub, "shapes/dot.png"); err != nil {
		t.Errorf("Expected shapes/dot.png in the data FS: %v", err)
	}
}
