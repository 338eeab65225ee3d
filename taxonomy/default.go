package taxonomy

// Default returns the built-in schema: the two-level personal-data
// category system and the three-level usage-scenario hierarchy used by
// the annotation prompts when no override file is configured.
func Default() *Schema {
	return &Schema{
		Categories: defaultCategories(),
		Scenes:     defaultScenes(),
	}
}

func defaultCategories() []Category {
	return []Category{
		{
			Level1: "个人基本资料",
			Level2s: []Level2{{Name: "个人基本资料", Examples: []string{
				"个人姓名", "生日", "年龄", "性别", "民族", "国籍", "籍贯", "政治面貌",
				"婚姻状况", "家庭关系", "住址", "个人电话号码", "电子邮件地址", "兴趣爱好",
			}}},
		},
		{
			Level1: "个人身份信息",
			Level2s: []Level2{{Name: "个人身份信息", Examples: []string{
				"身份证", "军官证", "护照", "驾驶证", "工作证", "社保卡", "居住证",
				"港澳台通行证等证件号码", "证件照片或影印件",
			}}},
		},
		{
			Level1: "个人生物识别信息",
			Level2s: []Level2{{Name: "生物识别信息", Examples: []string{
				"个人面部识别特征", "虹膜", "指纹", "基因", "声纹", "步态", "耳廓", "眼纹",
			}}},
		},
		{
			Level1: "网络身份标识信息",
			Level2s: []Level2{{Name: "网络身份标识信息", Examples: []string{
				"用户账号", "用户ID", "即时通信账号", "网络社交用户账号", "用户头像",
				"昵称", "个性签名", "IP地址",
			}}},
		},
		{
			Level1: "个人健康生理信息",
			Level2s: []Level2{
				{Name: "健康状况信息", Examples: []string{"体重", "身高", "体温", "肺活量", "血压", "血型"}},
				{Name: "医疗健康信息", Examples: []string{"医疗就诊记录", "生育信息", "既往病史"}},
			},
		},
		{
			Level1: "个人教育信息",
			Level2s: []Level2{{Name: "个人教育信息", Examples: []string{
				"学历", "学位", "教育经历", "学号", "成绩单", "资质证书", "培训记录", "奖惩信息",
			}}},
		},
		{
			Level1: "个人工作信息",
			Level2s: []Level2{{Name: "个人工作信息", Examples: []string{
				"个人职业", "职位", "职称", "工作单位", "工作地点", "工作经历", "工资", "简历",
			}}},
		},
		{
			Level1: "个人财产信息",
			Level2s: []Level2{
				{Name: "金融账户信息", Examples: []string{"银行账户账号", "证券账户账号", "账户密码"}},
				{Name: "个人交易信息", Examples: []string{"交易订单", "交易金额", "支付记录", "账单"}},
				{Name: "个人资产信息", Examples: []string{"个人收入状况", "房产信息", "存款信息", "车辆信息", "虚拟财产"}},
				{Name: "个人借贷信息", Examples: []string{"借款信息", "还款信息", "信贷记录", "征信信息"}},
			},
		},
		{
			Level1: "身份鉴别信息",
			Level2s: []Level2{{Name: "身份鉴别信息", Examples: []string{
				"账号口令", "数字证书", "短信验证码", "密码提示问题",
			}}},
		},
		{
			Level1: "个人通信信息",
			Level2s: []Level2{{Name: "个人通信信息", Examples: []string{
				"通信记录", "短信", "彩信", "话音", "电子邮件", "即时通信等通信内容",
			}}},
		},
		{
			Level1: "联系人信息",
			Level2s: []Level2{{Name: "联系人信息", Examples: []string{
				"通讯录", "好友列表", "群列表", "电子邮件地址列表", "家庭关系",
			}}},
		},
		{
			Level1: "个人上网记录",
			Level2s: []Level2{
				{Name: "个人操作记录", Examples: []string{"网页浏览记录", "软件使用记录", "点击记录", "收藏列表", "搜索记录"}},
				{Name: "UGC内容数据", Examples: []string{"发布的图文", "发布的视频", "弹幕内容", "直播画面", "上传的文件"}},
				{Name: "业务行为数据", Examples: []string{"游戏登录时间", "视频观看记录", "文章停留时长", "音乐播放列表"}},
			},
		},
		{
			Level1: "个人设备信息",
			Level2s: []Level2{
				{Name: "可变更的唯一设备识别码", Examples: []string{"AndroidID", "IDFA", "OAID"}},
				{Name: "不可变更的唯一设备识别码", Examples: []string{"IMEI", "MEID", "MAC地址", "硬件序列号"}},
				{Name: "应用软件列表", Examples: []string{"安装的应用程序列表"}},
				{Name: "设备参数", Examples: []string{"设备型号", "品牌", "操作系统版本", "屏幕分辨率", "CPU型号", "内存大小"}},
				{Name: "技术运维数据", Examples: []string{"崩溃日志", "错误日志", "性能数据"}},
				{Name: "设备状态数据", Examples: []string{"网络信号强度", "电池温度", "CPU使用率"}},
				{Name: "网络状态信息", Examples: []string{"Wi-Fi状态", "网络环境", "IP地址"}},
			},
		},
		{
			Level1: "个人位置信息",
			Level2s: []Level2{
				{Name: "粗略位置信息", Examples: []string{"地区代码", "城市代码"}},
				{Name: "行踪轨迹信息"},
				{Name: "住宿出行信息", Examples: []string{"个人住宿信息", "乘坐交通工具信息"}},
			},
		},
		{
			Level1: "个人标签信息",
			Level2s: []Level2{{Name: "个人标签信息", Examples: []string{
				"个人用户标签", "画像信息", "行为习惯", "兴趣偏好",
			}}},
		},
		{
			Level1: "个人运动信息",
			Level2s: []Level2{{Name: "个人运动信息", Examples: []string{
				"步数", "步频", "运动时长", "运动距离", "运动方式", "运动心率",
			}}},
		},
		{
			Level1: "第三方关联信息",
			Level2s: []Level2{{Name: "第三方关联信息", Examples: []string{
				"微信好友关系", "QQ群公告", "企业域名", "第三方账号绑定状态",
			}}},
		},
		{
			Level1: "其他个人信息",
			Level2s: []Level2{{Name: "其他个人信息", Examples: []string{
				"性取向", "婚史", "宗教信仰", "未公开的违法犯罪记录",
			}}},
		},
	}
}

func defaultScenes() []Scene {
	return []Scene{
		{
			Level1: "账户与身份管理",
			Level2s: []SceneLevel2{
				{Name: "登录与注册", Level3s: []string{
					"登录", "注册", "注册账号", "登录账号", "使用电子邮箱登录", "通过手机号码登录", "使用第三方账号登录",
				}},
				{Name: "账号绑定与解绑", Level3s: []string{
					"绑定手机号", "绑定微信账号", "绑定支付宝账号", "绑定第三方账户", "解绑第三方账户登录方式", "解绑已注册手机号码",
				}},
				{Name: "账号安全与维护", Level3s: []string{
					"修改密码", "更换手机号", "修改账号信息", "冻结账号", "解冻账号", "注销账号",
				}},
				{Name: "身份认证", Level3s: []string{
					"实名认证", "身份认证", "人脸识别验证", "申请认证", "学生身份认证",
				}},
			},
		},
		{
			Level1: "内容交互与发布",
			Level2s: []SceneLevel2{
				{Name: "内容创建与发布", Level3s: []string{
					"发布动态", "发布视频", "发布图文", "发布评论", "发布直播内容", "编辑内容", "上传内容",
				}},
				{Name: "内容消费与浏览", Level3s: []string{
					"浏览内容", "观看视频", "观看直播", "阅读小说", "浏览商品", "查看信息",
				}},
				{Name: "内容分享与传播", Level3s: []string{
					"分享内容至第三方平台", "分享视频", "分享图片", "分享位置", "转发内容",
				}},
				{Name: "互动与反馈", Level3s: []string{
					"点赞内容", "评论", "回复评论", "举报", "点踩内容", "反馈意见",
				}},
			},
		},
		{
			Level1: "交易与商务处理",
			Level2s: []SceneLevel2{
				{Name: "购买与支付", Level3s: []string{
					"购买商品", "购买服务", "付费购买", "支付订单", "使用支付功能", "充值得物币", "购买虚拟商品",
				}},
				{Name: "订单管理", Level3s: []string{
					"下单", "结算订单", "管理订单", "变更订单信息", "确认收货", "订单",
				}},
				{Name: "预订与预约", Level3s: []string{
					"预订酒店", "预订机票", "预订门票", "预约直播", "办理入住手续", "申请出行用车",
				}},
				{Name: "售后与维权", Level3s: []string{
					"申请售后", "申请退款", "处理投诉", "申请维权", "产生退款",
				}},
			},
		},
		{
			Level1: "位置与地理服务",
			Level2s: []SceneLevel2{
				{Name: "位置共享与记录", Level3s: []string{
					"开启位置权限", "记录位置信息", "设置通勤", "使用基于位置的服务", "启用地理位置信息",
				}},
				{Name: "附近搜索与交互", Level3s: []string{
					"查看附近的人", "浏览附近直播", "查找司机", "搜索附近门店", "推荐附近职位",
				}},
				{Name: "导航与出行", Level3s: []string{
					"使用导航功能", "查询出行路径", "叫车", "使用出行服务", "发起网络约车",
				}},
			},
		},
		{
			Level1: "设备功能与权限控制",
			Level2s: []SceneLevel2{
				{Name: "权限开启与关闭", Level3s: []string{
					"开启麦克风权限", "开启定位权限", "开启相机权限", "关闭蓝牙功能", "拒绝授权精确地理位置权限", "授权通讯录权限",
				}},
				{Name: "设备功能使用", Level3s: []string{
					"使用相机", "使用麦克风", "使用扫描二维码功能", "录制视频", "拍摄照片", "连接蓝牙设备",
				}},
				{Name: "系统操作与维护", Level3s: []string{
					"更新软件", "备份文件", "恢复出厂设定", "安装应用", "卸载应用", "储存信息",
				}},
			},
		},
		{
			Level1: "数据收集与处理",
			Level2s: []SceneLevel2{
				{Name: "数据收集", Level3s: []string{
					"收集个人信息", "收集设备信息", "收集语音内容", "获取验证码", "读取设备识别码",
				}},
				{Name: "数据处理与分析", Level3s: []string{
					"分析用户行为", "分析数据统计", "生成医美报告", "识别需求", "基于位置优化天气功能",
				}},
				{Name: "个性化与推荐", Level3s: []string{
					"处于个性化推荐场景", "提供个性化商品", "推荐信息", "使用智能推荐服务", "获得个性化内容展示",
				}},
			},
		},
	}
}
