package recipe_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/ec2stack/internal/bootstrap"
	"github.com/imamik/ec2stack/internal/config"
	"github.com/imamik/ec2stack/internal/deploy"
	"github.com/imamik/ec2stack/internal/lookup"
	awsplatform "github.com/imamik/ec2stack/internal/platform/aws"
	"github.com/imamik/ec2stack/internal/provisioning"
	"github.com/imamik/ec2stack/internal/provisioning/recipe"
	"github.com/imamik/ec2stack/internal/stack"
	"github.com/imamik/ec2stack/internal/util/naming"
)

var _ = Describe("web VM recipe", func() {
	var (
		mock *awsplatform.MockClient
		env  config.Environment
	)

	synthesize := func() (*provisioning.Context, *stack.Template, error) {
		ctx := provisioning.NewContext(context.Background(), config.Default(), env, &lookup.Resolver{Network: mock})
		ctx.Observer = provisioning.NewLogrObserver(logr.Discard())
		tmpl, err := recipe.Synthesize(ctx)
		return ctx, tmpl, err
	}

	BeforeEach(func() {
		mock = &awsplatform.MockClient{}
		env = config.Environment{Account: "111111111111", Region: "us-east-1"}
	})

	Context("when the account has a default VPC", func() {
		It("declares one network reference, one security group, one instance, and one output", func() {
			ctx, tmpl, err := synthesize()
			Expect(err).NotTo(HaveOccurred())

			Expect(ctx.State.VPC).NotTo(BeNil())
			Expect(ctx.Stack().ResourcesOfType(recipe.TypeSecurityGroup)).To(HaveLen(1))
			Expect(ctx.Stack().ResourcesOfType(recipe.TypeInstance)).To(HaveLen(1))
			Expect(tmpl.Outputs).To(HaveLen(1))
			Expect(tmpl.Outputs).To(HaveKey("webVmUrl"))
		})

		It("opens only TCP/80 inbound and leaves egress open", func() {
			_, tmpl, err := synthesize()
			Expect(err).NotTo(HaveOccurred())

			sg := tmpl.Resources[naming.SecurityGroup]
			ingress := sg.Properties["SecurityGroupIngress"].([]any)
			Expect(ingress).To(HaveLen(2))
			for _, r := range ingress {
				rule := r.(map[string]any)
				Expect(rule).To(HaveKeyWithValue("IpProtocol", "tcp"))
				Expect(rule).To(HaveKeyWithValue("FromPort", 80))
				Expect(rule).To(HaveKeyWithValue("ToPort", 80))
			}
			Expect(ingress[0]).To(HaveKeyWithValue("CidrIp", "0.0.0.0/0"))
			Expect(ingress[1]).To(HaveKeyWithValue("CidrIpv6", "::/0"))

			egress := sg.Properties["SecurityGroupEgress"].([]any)
			Expect(egress).To(ConsistOf(HaveKeyWithValue("IpProtocol", "-1")))
		})

		It("boots a t2.micro that installs nginx through cfn-init", func() {
			_, tmpl, err := synthesize()
			Expect(err).NotTo(HaveOccurred())

			vm := tmpl.Resources[naming.Instance]
			Expect(vm.Properties).To(HaveKeyWithValue("InstanceType", "t2.micro"))

			metadata, err := json.Marshal(vm.Metadata)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(metadata)).To(ContainSubstring("sudo apt-get update -y"))
			Expect(string(metadata)).To(ContainSubstring("sudo apt-get install -y nginx"))
		})

		It("retries the utilities clone without bound and tolerates each helper failing", func() {
			_, tmpl, err := synthesize()
			Expect(err).NotTo(HaveOccurred())

			script := tmpl.Resources[naming.Instance].Properties["UserData"].(map[string]any)["Fn::Base64"].(map[string]any)["Fn::Sub"].(string)
			Expect(script).To(MatchRegexp(`(?m)^until git clone \S+; do echo "Retrying"; done$`))
			for _, helper := range []string{"qs_update-os", "qs_bootstrap_pip", "qs_aws-cfn-bootstrap"} {
				Expect(strings.Split(script, "\n")).To(ContainElement(bootstrap.ReportOnFailure(helper, bootstrap.ErrorReporter)))
			}
		})

		It("exports a web URL that resolves to http://<ip>/ after deploy", func() {
			_, tmpl, err := synthesize()
			Expect(err).NotTo(HaveOccurred())
			body, err := tmpl.JSON()
			Expect(err).NotTo(HaveOccurred())

			mock.DescribeStackFunc = func(context.Context, string) (*awsplatform.StackStatus, error) {
				return &awsplatform.StackStatus{
					Name:   config.DefaultStackName,
					Status: "CREATE_COMPLETE",
					Outputs: map[string]awsplatform.StackOutput{
						"webVmUrl": {Value: "http://203.0.113.10/", ExportName: "webVmUrl"},
					},
				}, nil
			}
			created := false
			mock.CreateStackFunc = func(_ context.Context, in awsplatform.StackInput) (string, error) {
				created = true
				Expect(in.TemplateBody).To(Equal(string(body)))
				return "arn:stack", nil
			}
			existing := true
			mock.DescribeStackFunc = wrapFirstMissing(mock.DescribeStackFunc, &existing)

			d := deploy.New(mock, deploy.WithPollInterval(time.Millisecond))
			res, err := d.Deploy(context.Background(), deploy.Request{StackName: config.DefaultStackName, TemplateBody: body})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeTrue())
			Expect(res.WebURL).To(MatchRegexp(`^http://\d{1,3}(\.\d{1,3}){3}/$`))
		})
	})

	Context("when only the fallback environment variables are set", func() {
		It("targets the fallback account and region", func() {
			vars := map[string]string{
				config.EnvDefaultAccount: "222222222222",
				config.EnvDefaultRegion:  "eu-west-1",
			}
			env = config.ResolveEnvironmentFrom(func(k string) string { return vars[k] })
			ctx, _, err := synthesize()
			Expect(err).NotTo(HaveOccurred())
			Expect(ctx.Stack().Account).To(Equal("222222222222"))
			Expect(ctx.Stack().Region).To(Equal("eu-west-1"))
		})
	})

	Context("when the account has no default VPC", func() {
		It("surfaces the lookup error and declares nothing", func() {
			mock.DescribeDefaultVPCFunc = func(context.Context) (*awsplatform.VPCInfo, error) {
				return nil, fmt.Errorf("%w in region us-east-1", awsplatform.ErrNoDefaultVPC)
			}
			ctx, _, err := synthesize()
			Expect(err).To(MatchError(recipe.ErrNoDefaultVPC))
			Expect(ctx.Stack().Resources()).To(BeEmpty())
		})
	})
})

// wrapFirstMissing reports the stack as missing on the first call, so a
// deploy takes the create path, then defers to next.
func wrapFirstMissing(next func(context.Context, string) (*awsplatform.StackStatus, error), first *bool) func(context.Context, string) (*awsplatform.StackStatus, error) {
	return func(ctx context.Context, name string) (*awsplatform.StackStatus, error) {
		if *first {
			*first = false
			return nil, nil
		}
		return next(ctx, name)
	}
}
