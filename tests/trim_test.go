package tests_test

import (
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/agar/pkg/agar"

	"github.com/deyak360/recording-trimmer/tests/testutils"
)

func TestTrimCLI(t *testing.T) {
	testCase := testutils.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "trim without arguments fails",
			Command:     test.Command("trim"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "trim with unknown conflict policy fails",
			Command:     test.Command("trim", "--on-conflict", "bogus", "/tmp"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "trim with placeholder-free naming scheme fails",
			Command:     test.Command("trim", "--naming", "output", "/tmp"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "trim with negative offset fails",
			Command:     test.Command("trim", "--offset", "-1", "/tmp"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "trim short quiet audio reports nothing to do",
			Setup: func(data test.Data, helpers test.Helpers) {
				data.Labels().Set("file", agar.LowLoudnessQuiet(data, helpers))
				data.Labels().Set("out", t.TempDir())
			},
			Command: func(data test.Data, helpers test.Helpers) test.TestableCommand {
				return helpers.Command(
					"trim",
					"--out", data.Labels().Get("out"),
					data.Labels().Get("file"),
				)
			},
			Expected: func(_ test.Data, _ test.Helpers) *test.Expected {
				return &test.Expected{
					ExitCode: expect.ExitCodeSuccess,
					Output:   expectContains("not worth trimming"),
				}
			},
		},
	}

	testCase.Run(t)
}
